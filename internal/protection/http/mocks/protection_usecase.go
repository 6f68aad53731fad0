// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/detection"
	"github.com/allisson/privacy/internal/masking"
)

// MockProtectionUseCase is a mock implementation of ProtectionUseCase for testing.
type MockProtectionUseCase struct {
	mock.Mock
}

// Mask mocks the Mask method of ProtectionUseCase.
func (m *MockProtectionUseCase) Mask(ctx context.Context, value string, rule masking.Rule) (string, error) {
	args := m.Called(ctx, value, rule)
	return args.String(0), args.Error(1)
}

// Hash mocks the Hash method of ProtectionUseCase.
func (m *MockProtectionUseCase) Hash(ctx context.Context, value, salt string) (string, error) {
	args := m.Called(ctx, value, salt)
	return args.String(0), args.Error(1)
}

// Encrypt mocks the Encrypt method of ProtectionUseCase.
func (m *MockProtectionUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method of ProtectionUseCase.
func (m *MockProtectionUseCase) Decrypt(ctx context.Context, envelope string) (string, error) {
	args := m.Called(ctx, envelope)
	return args.String(0), args.Error(1)
}

// Detect mocks the Detect method of ProtectionUseCase.
func (m *MockProtectionUseCase) Detect(ctx context.Context, text string) ([]detection.Finding, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]detection.Finding), args.Error(1)
}

// Redact mocks the Redact method of ProtectionUseCase.
func (m *MockProtectionUseCase) Redact(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// AnonymousID mocks the AnonymousID method of ProtectionUseCase.
func (m *MockProtectionUseCase) AnonymousID(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// AnonymizeRecord mocks the AnonymizeRecord method of ProtectionUseCase.
func (m *MockProtectionUseCase) AnonymizeRecord(
	ctx context.Context,
	record anonymization.Record,
	fields []string,
	replacements anonymization.Record,
) (anonymization.Record, error) {
	args := m.Called(ctx, record, fields, replacements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(anonymization.Record), args.Error(1)
}

// PrepareForExport mocks the PrepareForExport method of ProtectionUseCase.
func (m *MockProtectionUseCase) PrepareForExport(
	ctx context.Context,
	table string,
	record anonymization.Record,
) (anonymization.Record, error) {
	args := m.Called(ctx, table, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(anonymization.Record), args.Error(1)
}

// PrepareForDeletion mocks the PrepareForDeletion method of ProtectionUseCase.
func (m *MockProtectionUseCase) PrepareForDeletion(
	ctx context.Context,
	table, userID string,
	record anonymization.Record,
) (anonymization.Record, error) {
	args := m.Called(ctx, table, userID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(anonymization.Record), args.Error(1)
}
