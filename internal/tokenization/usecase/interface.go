// Package usecase implements tokenization business logic: deterministic
// find-or-insert token minting, detokenization, validation, revocation,
// and expired-token cleanup.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/privacy/internal/tokenization/domain"
)

// TokenRepository defines the interface for token persistence. Create must
// enforce uniqueness of both the token string and the value hash, mapping
// violations to ErrTokenAlreadyExists; that constraint is what makes
// concurrent tokenization of the same value converge on a single token.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByToken(ctx context.Context, token string) (*domain.Token, error)
	GetByValueHash(ctx context.Context, valueHash string) (*domain.Token, error)
	Revoke(ctx context.Context, token string) error
	Delete(ctx context.Context, tokenID uuid.UUID) error

	// DeleteExpired deletes tokens that expired before the specified
	// timestamp and returns the number deleted. Timestamps are UTC.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	// CountExpired counts tokens that expired before the specified
	// timestamp without deleting them. Timestamps are UTC.
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// HashService produces the deterministic digest used to look tokens up by
// original value.
type HashService interface {
	Hash(value string) string
}

// TokenizationUseCase defines token generation and lifecycle operations.
type TokenizationUseCase interface {
	// Tokenize returns the surrogate token for a value, minting one if no
	// valid token exists. Tokenizing the same value again returns the same
	// token until it expires or is revoked.
	Tokenize(ctx context.Context, value string, expiresAt *time.Time) (*domain.Token, error)

	// Detokenize returns the original value for a token. Fails with
	// ErrTokenNotFound, ErrTokenExpired, or ErrTokenRevoked.
	Detokenize(ctx context.Context, token string) (string, error)

	// Validate reports whether a token exists and is neither expired nor
	// revoked. An unknown token is invalid, not an error.
	Validate(ctx context.Context, token string) (bool, error)

	// Revoke marks a token as revoked, preventing further detokenization.
	Revoke(ctx context.Context, token string) error

	// CleanupExpired deletes tokens that expired more than the given number
	// of days ago. With dryRun it only reports the count.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
