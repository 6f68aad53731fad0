package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacy/internal/tokenization/domain"
)

func tokenColumns() []string {
	return []string{"id", "token", "value_hash", "envelope", "created_at", "expires_at", "revoked_at"}
}

func TestPostgreSQLTokenRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)
		token := newToken("tok_a", "hash-a")

		mock.ExpectExec("INSERT INTO tokens").
			WithArgs(
				token.ID,
				token.Token,
				token.ValueHash,
				token.Envelope,
				token.CreatedAt,
				token.ExpiresAt,
				token.RevokedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure_UniqueViolation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)
		token := newToken("tok_a", "hash-a")

		mock.ExpectExec("INSERT INTO tokens").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "tokens_value_hash_key"`))

		err = repo.Create(ctx, token)
		assert.ErrorIs(t, err, domain.ErrTokenAlreadyExists)
	})
}

func TestPostgreSQLTokenRepository_GetByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)
		id := uuid.Must(uuid.NewV7())
		createdAt := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM tokens").
			WithArgs("tok_a").
			WillReturnRows(sqlmock.NewRows(tokenColumns()).
				AddRow(id.String(), "tok_a", "hash-a", "ZW52ZWxvcGU=", createdAt, nil, nil))

		token, err := repo.GetByToken(ctx, "tok_a")
		require.NoError(t, err)
		assert.Equal(t, id, token.ID)
		assert.Equal(t, "hash-a", token.ValueHash)
		assert.Nil(t, token.ExpiresAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM tokens").
			WithArgs("tok_missing").
			WillReturnRows(sqlmock.NewRows(tokenColumns()))

		_, err = repo.GetByToken(ctx, "tok_missing")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestPostgreSQLTokenRepository_GetByValueHash(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery("SELECT (.+) FROM tokens").
		WithArgs("hash-a").
		WillReturnRows(sqlmock.NewRows(tokenColumns()).
			AddRow(id.String(), "tok_a", "hash-a", "ZW52ZWxvcGU=", time.Now().UTC(), nil, nil))

	token, err := repo.GetByValueHash(ctx, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, "tok_a", token.Token)
}

func TestPostgreSQLTokenRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		mock.ExpectExec("UPDATE tokens SET revoked_at").
			WithArgs("tok_a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Revoke(ctx, "tok_a"))
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		mock.ExpectExec("UPDATE tokens SET revoked_at").
			WithArgs("tok_missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Revoke(ctx, "tok_missing"), domain.ErrTokenNotFound)
	})
}

func TestPostgreSQLTokenRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLTokenRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec("DELETE FROM tokens WHERE id").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(ctx, id))
}

func TestPostgreSQLTokenRepository_Expiration(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	t.Run("DeleteExpired", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		mock.ExpectExec("DELETE FROM tokens WHERE expires_at").
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteExpired(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("CountExpired", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountExpired(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("ZeroCutoffRejected", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLTokenRepository(db)

		_, err = repo.DeleteExpired(ctx, time.Time{})
		assert.Error(t, err)

		_, err = repo.CountExpired(ctx, time.Time{})
		assert.Error(t, err)
	})
}
