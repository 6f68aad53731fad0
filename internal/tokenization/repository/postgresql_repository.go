package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/privacy/internal/database"
	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/tokenization/domain"
)

// PostgreSQLTokenRepository implements token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a token. Unique violations on token or value_hash map to
// ErrTokenAlreadyExists so the use case can re-read the winning row.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, token, value_hash, envelope, created_at, expires_at, revoked_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.Token,
		token.ValueHash,
		token.Envelope,
		token.CreatedAt,
		token.ExpiresAt,
		token.RevokedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrTokenAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByToken retrieves a token by its token string.
func (p *PostgreSQLTokenRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token, value_hash, envelope, created_at, expires_at, revoked_at
			  FROM tokens
			  WHERE token = $1`

	var token domain.Token
	err := querier.QueryRowContext(ctx, query, tokenStr).Scan(
		&token.ID,
		&token.Token,
		&token.ValueHash,
		&token.Envelope,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by token string")
	}

	return &token, nil
}

// GetByValueHash retrieves the token minted for a value hash.
func (p *PostgreSQLTokenRepository) GetByValueHash(ctx context.Context, valueHash string) (*domain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token, value_hash, envelope, created_at, expires_at, revoked_at
			  FROM tokens
			  WHERE value_hash = $1`

	var token domain.Token
	err := querier.QueryRowContext(ctx, query, valueHash).Scan(
		&token.ID,
		&token.Token,
		&token.ValueHash,
		&token.Envelope,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by value hash")
	}

	return &token, nil
}

// Revoke marks a token as revoked by setting its revoked_at timestamp.
func (p *PostgreSQLTokenRepository) Revoke(ctx context.Context, tokenStr string) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET revoked_at = NOW() WHERE token = $1`

	result, err := querier.ExecContext(ctx, query, tokenStr)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTokenNotFound
	}

	return nil
}

// Delete removes a token by ID.
func (p *PostgreSQLTokenRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tokens WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete token")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTokenNotFound
	}

	return nil
}

// DeleteExpired deletes tokens that expired before the specified timestamp.
// Returns the number of deleted tokens. All timestamps are expected in UTC.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tokens WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	return result.RowsAffected()
}

// CountExpired counts tokens that expired before the specified timestamp
// without deleting them. All timestamps are expected in UTC.
func (p *PostgreSQLTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM tokens WHERE expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}

	return count, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
