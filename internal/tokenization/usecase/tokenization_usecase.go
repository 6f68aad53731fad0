package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/allisson/privacy/internal/crypto/service"
	"github.com/allisson/privacy/internal/database"
	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/tokenization/domain"
	tokenizationService "github.com/allisson/privacy/internal/tokenization/service"
)

// maxValueSize caps the plaintext accepted for tokenization.
const maxValueSize = 4096

type tokenizationUseCase struct {
	txManager   database.TxManager
	tokenRepo   TokenRepository
	hashService HashService
	encrypter   cryptoService.Encrypter
	keyMaterial string
	generator   tokenizationService.TokenGenerator
}

// NewTokenizationUseCase creates a TokenizationUseCase. keyMaterial is the
// passphrase under which original values are encrypted at rest.
func NewTokenizationUseCase(
	txManager database.TxManager,
	tokenRepo TokenRepository,
	hashService HashService,
	encrypter cryptoService.Encrypter,
	keyMaterial string,
	generator tokenizationService.TokenGenerator,
) TokenizationUseCase {
	return &tokenizationUseCase{
		txManager:   txManager,
		tokenRepo:   tokenRepo,
		hashService: hashService,
		encrypter:   encrypter,
		keyMaterial: keyMaterial,
		generator:   generator,
	}
}

// Tokenize returns the token for a value, minting a new one when no valid
// token exists.
//
// Determinism rides on the value-hash lookup plus the repository's unique
// constraints. Two concurrent calls for an unseen value both miss the
// lookup and both try to insert; the loser gets ErrTokenAlreadyExists and
// re-reads the winner's row, so both callers end up with the same token.
func (u *tokenizationUseCase) Tokenize(
	ctx context.Context,
	value string,
	expiresAt *time.Time,
) (*domain.Token, error) {
	if value == "" {
		return nil, domain.ErrValueRequired
	}
	if len(value) > maxValueSize {
		return nil, domain.ErrValueTooLong
	}

	valueHash := u.hashService.Hash(value)

	existing, err := u.tokenRepo.GetByValueHash(ctx, valueHash)
	if err != nil && !apperrors.Is(err, domain.ErrTokenNotFound) {
		return nil, err
	}
	if existing != nil && existing.IsValid() {
		return existing, nil
	}

	token, err := u.mintToken(value, valueHash, expiresAt)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Expired or revoked token occupies the value-hash slot; replace it
		// atomically so the hash never points at two rows.
		err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := u.tokenRepo.Delete(ctx, existing.ID); err != nil &&
				!apperrors.Is(err, domain.ErrTokenNotFound) {
				return err
			}
			return u.tokenRepo.Create(ctx, token)
		})
		if err != nil {
			if apperrors.Is(err, domain.ErrTokenAlreadyExists) {
				return u.tokenRepo.GetByValueHash(ctx, valueHash)
			}
			return nil, err
		}
		return token, nil
	}

	if err := u.tokenRepo.Create(ctx, token); err != nil {
		if apperrors.Is(err, domain.ErrTokenAlreadyExists) {
			// Lost the insert race; the winner's token is now authoritative.
			return u.tokenRepo.GetByValueHash(ctx, valueHash)
		}
		return nil, err
	}

	return token, nil
}

func (u *tokenizationUseCase) mintToken(
	value, valueHash string,
	expiresAt *time.Time,
) (*domain.Token, error) {
	envelope, err := u.encrypter.Encrypt(value, u.keyMaterial)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt value")
	}

	tokenValue, err := u.generator.Generate()
	if err != nil {
		return nil, err
	}

	return &domain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		Token:     tokenValue,
		ValueHash: valueHash,
		Envelope:  envelope,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}, nil
}

// Detokenize returns the original value for a token.
func (u *tokenizationUseCase) Detokenize(ctx context.Context, token string) (string, error) {
	record, err := u.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}

	if record.IsExpired() {
		return "", domain.ErrTokenExpired
	}
	if record.IsRevoked() {
		return "", domain.ErrTokenRevoked
	}

	value, err := u.encrypter.Decrypt(record.Envelope, u.keyMaterial)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decrypt token envelope")
	}

	return value, nil
}

// Validate reports whether a token exists and is valid.
func (u *tokenizationUseCase) Validate(ctx context.Context, token string) (bool, error) {
	record, err := u.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if apperrors.Is(err, domain.ErrTokenNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsValid(), nil
}

// Revoke marks a token as revoked.
func (u *tokenizationUseCase) Revoke(ctx context.Context, token string) error {
	if _, err := u.tokenRepo.GetByToken(ctx, token); err != nil {
		return err
	}
	return u.tokenRepo.Revoke(ctx, token)
}

// CleanupExpired deletes tokens that expired more than days ago, or only
// counts them when dryRun is set.
func (u *tokenizationUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.New("days must be non-negative")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return u.tokenRepo.CountExpired(ctx, cutoff)
	}
	return u.tokenRepo.DeleteExpired(ctx, cutoff)
}
