package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"
	cryptoService "github.com/allisson/privacy/internal/crypto/service"
	"github.com/allisson/privacy/internal/tokenization/domain"
	"github.com/allisson/privacy/internal/tokenization/repository"
	tokenizationService "github.com/allisson/privacy/internal/tokenization/service"
)

// TestMain verifies no goroutines leak from the concurrency tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeTxManager runs the function directly; the memory repository has no
// transaction support and does not need one.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

const testKeyMaterial = "test-passphrase"

func newTestUseCase(repo TokenRepository) TokenizationUseCase {
	encrypter := cryptoService.NewEnvelopeCipher(
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
		cryptoService.MinPBKDF2Iterations,
	)
	return NewTokenizationUseCase(
		fakeTxManager{},
		repo,
		NewSaltedHashService("test-salt"),
		encrypter,
		testKeyMaterial,
		tokenizationService.NewRandomTokenGenerator(),
	)
}

func TestTokenizationUseCase_Tokenize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		token, err := useCase.Tokenize(ctx, "123-45-6789", nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(token.Token, tokenizationService.TokenPrefix))
		assert.NotEmpty(t, token.ValueHash)
		assert.NotEmpty(t, token.Envelope)
		assert.NotContains(t, token.Envelope, "123-45-6789")
	})

	t.Run("Deterministic_SameValueSameToken", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		first, err := useCase.Tokenize(ctx, "123-45-6789", nil)
		require.NoError(t, err)

		second, err := useCase.Tokenize(ctx, "123-45-6789", nil)
		require.NoError(t, err)

		assert.Equal(t, first.Token, second.Token)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("DifferentValuesDifferentTokens", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		a, err := useCase.Tokenize(ctx, "value-a", nil)
		require.NoError(t, err)
		b, err := useCase.Tokenize(ctx, "value-b", nil)
		require.NoError(t, err)

		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("ExpiredTokenIsReplaced", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		past := time.Now().UTC().Add(-time.Hour)
		old, err := useCase.Tokenize(ctx, "value", &past)
		require.NoError(t, err)

		fresh, err := useCase.Tokenize(ctx, "value", nil)
		require.NoError(t, err)
		assert.NotEqual(t, old.Token, fresh.Token)
		assert.True(t, fresh.IsValid())
	})

	t.Run("RevokedTokenIsReplaced", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		old, err := useCase.Tokenize(ctx, "value", nil)
		require.NoError(t, err)
		require.NoError(t, useCase.Revoke(ctx, old.Token))

		fresh, err := useCase.Tokenize(ctx, "value", nil)
		require.NoError(t, err)
		assert.NotEqual(t, old.Token, fresh.Token)
	})

	t.Run("Failure_EmptyValue", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		_, err := useCase.Tokenize(ctx, "", nil)
		assert.ErrorIs(t, err, domain.ErrValueRequired)
	})

	t.Run("Failure_ValueTooLong", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		_, err := useCase.Tokenize(ctx, strings.Repeat("x", maxValueSize+1), nil)
		assert.ErrorIs(t, err, domain.ErrValueTooLong)
	})

	t.Run("ConcurrentCallsConvergeOnOneToken", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		const callers = 10
		var wg sync.WaitGroup
		tokens := make([]string, callers)
		errs := make([]error, callers)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				token, err := useCase.Tokenize(ctx, "shared-value", nil)
				if err == nil {
					tokens[i] = token.Token
				}
				errs[i] = err
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, tokens[0], tokens[i])
		}
	})
}

func TestTokenizationUseCase_Detokenize(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		token, err := useCase.Tokenize(ctx, "4111-1111-1111-1111", nil)
		require.NoError(t, err)

		value, err := useCase.Detokenize(ctx, token.Token)
		require.NoError(t, err)
		assert.Equal(t, "4111-1111-1111-1111", value)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		_, err := useCase.Detokenize(ctx, "tok_missing")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("Failure_Expired", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		past := time.Now().UTC().Add(-time.Hour)
		token, err := useCase.Tokenize(ctx, "value", &past)
		require.NoError(t, err)

		_, err = useCase.Detokenize(ctx, token.Token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("Failure_Revoked", func(t *testing.T) {
		useCase := newTestUseCase(repository.NewMemoryTokenRepository())

		token, err := useCase.Tokenize(ctx, "value", nil)
		require.NoError(t, err)
		require.NoError(t, useCase.Revoke(ctx, token.Token))

		_, err = useCase.Detokenize(ctx, token.Token)
		assert.ErrorIs(t, err, domain.ErrTokenRevoked)
	})
}

func TestTokenizationUseCase_Validate(t *testing.T) {
	ctx := context.Background()
	useCase := newTestUseCase(repository.NewMemoryTokenRepository())

	token, err := useCase.Tokenize(ctx, "value", nil)
	require.NoError(t, err)

	t.Run("ValidToken", func(t *testing.T) {
		valid, err := useCase.Validate(ctx, token.Token)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("UnknownTokenIsInvalidNotError", func(t *testing.T) {
		valid, err := useCase.Validate(ctx, "tok_missing")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("RevokedTokenIsInvalid", func(t *testing.T) {
		require.NoError(t, useCase.Revoke(ctx, token.Token))

		valid, err := useCase.Validate(ctx, token.Token)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestTokenizationUseCase_Revoke(t *testing.T) {
	ctx := context.Background()
	useCase := newTestUseCase(repository.NewMemoryTokenRepository())

	t.Run("Failure_NotFound", func(t *testing.T) {
		assert.ErrorIs(t, useCase.Revoke(ctx, "tok_missing"), domain.ErrTokenNotFound)
	})
}

func TestTokenizationUseCase_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	useCase := newTestUseCase(repository.NewMemoryTokenRepository())

	past := time.Now().UTC().Add(-72 * time.Hour)
	_, err := useCase.Tokenize(ctx, "old-value", &past)
	require.NoError(t, err)
	_, err = useCase.Tokenize(ctx, "live-value", nil)
	require.NoError(t, err)

	t.Run("DryRun", func(t *testing.T) {
		count, err := useCase.CleanupExpired(ctx, 1, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := useCase.CleanupExpired(ctx, 1, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		count, err := useCase.CleanupExpired(ctx, 1, true)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Failure_NegativeDays", func(t *testing.T) {
		_, err := useCase.CleanupExpired(ctx, -1, false)
		assert.Error(t, err)
	})
}
