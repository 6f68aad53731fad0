// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/privacy/internal/tokenization/domain"
)

// MockTokenizationUseCase is a mock implementation of TokenizationUseCase for testing.
type MockTokenizationUseCase struct {
	mock.Mock
}

// Tokenize mocks the Tokenize method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Tokenize(
	ctx context.Context,
	value string,
	expiresAt *time.Time,
) (*domain.Token, error) {
	args := m.Called(ctx, value, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

// Detokenize mocks the Detokenize method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Detokenize(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// Validate mocks the Validate method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Validate(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// Revoke mocks the Revoke method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// CleanupExpired mocks the CleanupExpired method of TokenizationUseCase.
func (m *MockTokenizationUseCase) CleanupExpired(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
