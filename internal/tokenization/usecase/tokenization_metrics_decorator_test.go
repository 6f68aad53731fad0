package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacy/internal/tokenization/domain"
	"github.com/allisson/privacy/internal/tokenization/repository"
)

// recordingMetrics captures recorded operations for assertions.
type recordingMetrics struct {
	operations []string
	statuses   []string
	durations  int
}

func (r *recordingMetrics) RecordOperation(_ context.Context, _, operation, status string) {
	r.operations = append(r.operations, operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(_ context.Context, _, _ string, _ time.Duration, _ string) {
	r.durations++
}

func TestTokenizationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("RecordsSuccess", func(t *testing.T) {
		recorder := &recordingMetrics{}
		useCase := NewTokenizationUseCaseWithMetrics(
			newTestUseCase(repository.NewMemoryTokenRepository()),
			recorder,
		)

		token, err := useCase.Tokenize(ctx, "value", nil)
		require.NoError(t, err)

		_, err = useCase.Detokenize(ctx, token.Token)
		require.NoError(t, err)

		valid, err := useCase.Validate(ctx, token.Token)
		require.NoError(t, err)
		assert.True(t, valid)

		require.NoError(t, useCase.Revoke(ctx, token.Token))

		_, err = useCase.CleanupExpired(ctx, 30, true)
		require.NoError(t, err)

		assert.Equal(t,
			[]string{"tokenize", "detokenize", "validate", "revoke", "cleanup_expired"},
			recorder.operations,
		)
		assert.Equal(t,
			[]string{"success", "success", "success", "success", "success"},
			recorder.statuses,
		)
		assert.Equal(t, 5, recorder.durations)
	})

	t.Run("RecordsError", func(t *testing.T) {
		recorder := &recordingMetrics{}
		useCase := NewTokenizationUseCaseWithMetrics(
			newTestUseCase(repository.NewMemoryTokenRepository()),
			recorder,
		)

		_, err := useCase.Detokenize(ctx, "tok_missing")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		assert.Equal(t, []string{"detokenize"}, recorder.operations)
		assert.Equal(t, []string{"error"}, recorder.statuses)
	})
}
