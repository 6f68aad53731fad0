// Package repository implements token persistence. Three backends share
// the same behavior: an in-memory store for tests and single-process use,
// plus PostgreSQL and MySQL stores for production. Uniqueness of both the
// token string and the value hash is enforced by every backend, which is
// what keeps concurrent tokenization of the same value deterministic.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/privacy/internal/tokenization/domain"
)

// MemoryTokenRepository stores tokens in process memory guarded by a
// mutex, so find-or-insert races resolve the same way they do against the
// SQL backends: the loser gets ErrTokenAlreadyExists.
type MemoryTokenRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.Token
	byToken map[string]uuid.UUID
	byHash  map[string]uuid.UUID
}

// NewMemoryTokenRepository creates an empty in-memory token repository.
func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{
		byID:    make(map[uuid.UUID]*domain.Token),
		byToken: make(map[string]uuid.UUID),
		byHash:  make(map[string]uuid.UUID),
	}
}

// Create inserts a token, failing with ErrTokenAlreadyExists when either
// the token string or the value hash is already present.
func (m *MemoryTokenRepository) Create(_ context.Context, token *domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byToken[token.Token]; ok {
		return domain.ErrTokenAlreadyExists
	}
	if _, ok := m.byHash[token.ValueHash]; ok {
		return domain.ErrTokenAlreadyExists
	}

	stored := *token
	m.byID[stored.ID] = &stored
	m.byToken[stored.Token] = stored.ID
	m.byHash[stored.ValueHash] = stored.ID
	return nil
}

// GetByToken retrieves a token by its token string.
func (m *MemoryTokenRepository) GetByToken(_ context.Context, tokenStr string) (*domain.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byToken[tokenStr]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	copied := *m.byID[id]
	return &copied, nil
}

// GetByValueHash retrieves the token minted for a value hash.
func (m *MemoryTokenRepository) GetByValueHash(_ context.Context, valueHash string) (*domain.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byHash[valueHash]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	copied := *m.byID[id]
	return &copied, nil
}

// Revoke marks a token as revoked.
func (m *MemoryTokenRepository) Revoke(_ context.Context, tokenStr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byToken[tokenStr]
	if !ok {
		return domain.ErrTokenNotFound
	}
	now := time.Now().UTC()
	m.byID[id].RevokedAt = &now
	return nil
}

// Delete removes a token by ID.
func (m *MemoryTokenRepository) Delete(_ context.Context, tokenID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.byID[tokenID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	delete(m.byToken, token.Token)
	delete(m.byHash, token.ValueHash)
	delete(m.byID, tokenID)
	return nil
}

// DeleteExpired deletes tokens that expired before olderThan and returns
// the number deleted.
func (m *MemoryTokenRepository) DeleteExpired(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, token := range m.byID {
		if token.ExpiresAt != nil && token.ExpiresAt.Before(olderThan) {
			delete(m.byToken, token.Token)
			delete(m.byHash, token.ValueHash)
			delete(m.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

// CountExpired counts tokens that expired before olderThan.
func (m *MemoryTokenRepository) CountExpired(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, token := range m.byID {
		if token.ExpiresAt != nil && token.ExpiresAt.Before(olderThan) {
			count++
		}
	}
	return count, nil
}
