package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/privacy/internal/database"
	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/tokenization/domain"
)

// MySQLTokenRepository implements token persistence for MySQL. UUIDs are
// stored as BINARY(16).
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a MySQL token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a token. Duplicate entry errors (MySQL error 1062) on
// token or value_hash map to ErrTokenAlreadyExists.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (id, token, value_hash, envelope, created_at, expires_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.Token,
		token.ValueHash,
		token.Envelope,
		token.CreatedAt,
		token.ExpiresAt,
		token.RevokedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.ErrTokenAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByToken retrieves a token by its token string.
func (m *MySQLTokenRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token, value_hash, envelope, created_at, expires_at, revoked_at
			  FROM tokens
			  WHERE token = ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, tokenStr), "failed to get token by token string")
}

// GetByValueHash retrieves the token minted for a value hash.
func (m *MySQLTokenRepository) GetByValueHash(ctx context.Context, valueHash string) (*domain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token, value_hash, envelope, created_at, expires_at, revoked_at
			  FROM tokens
			  WHERE value_hash = ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, valueHash), "failed to get token by value hash")
}

func (m *MySQLTokenRepository) scanToken(row *sql.Row, wrapMsg string) (*domain.Token, error) {
	var token domain.Token
	var id []byte

	err := row.Scan(
		&id,
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
		return nil, apperrors.Wrap(err, wrapMsg)
	}

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}

	return &token, nil
}

// Revoke marks a token as revoked by setting its revoked_at timestamp.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, tokenStr string) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tokens SET revoked_at = UTC_TIMESTAMP() WHERE token = ?`

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
func (m *MySQLTokenRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE id = ?`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	result, err := querier.ExecContext(ctx, query, id)
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
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	return result.RowsAffected()
}

// CountExpired counts tokens that expired before the specified timestamp
// without deleting them. All timestamps are expected in UTC.
func (m *MySQLTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM tokens WHERE expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}

	return count, nil
}
