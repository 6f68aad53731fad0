package usecase

import (
	"context"
	"time"

	"github.com/allisson/privacy/internal/metrics"
	"github.com/allisson/privacy/internal/tokenization/domain"
)

// tokenizationUseCaseWithMetrics decorates TokenizationUseCase with metrics
// instrumentation.
type tokenizationUseCaseWithMetrics struct {
	next    TokenizationUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenizationUseCaseWithMetrics wraps a TokenizationUseCase with
// metrics recording.
func NewTokenizationUseCaseWithMetrics(
	useCase TokenizationUseCase,
	m metrics.BusinessMetrics,
) TokenizationUseCase {
	return &tokenizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenizationUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, "tokenization", operation, status)
	t.metrics.RecordDuration(ctx, "tokenization", operation, time.Since(start), status)
}

func (t *tokenizationUseCaseWithMetrics) Tokenize(
	ctx context.Context,
	value string,
	expiresAt *time.Time,
) (*domain.Token, error) {
	start := time.Now()
	token, err := t.next.Tokenize(ctx, value, expiresAt)
	t.record(ctx, "tokenize", start, err)
	return token, err
}

func (t *tokenizationUseCaseWithMetrics) Detokenize(ctx context.Context, token string) (string, error) {
	start := time.Now()
	value, err := t.next.Detokenize(ctx, token)
	t.record(ctx, "detokenize", start, err)
	return value, err
}

func (t *tokenizationUseCaseWithMetrics) Validate(ctx context.Context, token string) (bool, error) {
	start := time.Now()
	valid, err := t.next.Validate(ctx, token)
	t.record(ctx, "validate", start, err)
	return valid, err
}

func (t *tokenizationUseCaseWithMetrics) Revoke(ctx context.Context, token string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, token)
	t.record(ctx, "revoke", start, err)
	return err
}

func (t *tokenizationUseCaseWithMetrics) CleanupExpired(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx, days, dryRun)
	t.record(ctx, "cleanup_expired", start, err)
	return count, err
}
