package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token maps an opaque surrogate token to the encrypted original value.
//
// ValueHash is a salted digest of the original value and drives the
// deterministic behavior: tokenizing the same value twice finds the
// existing row by hash instead of minting a new token. Envelope holds the
// value encrypted at rest; the plaintext is never persisted.
type Token struct {
	ID        uuid.UUID
	Token     string
	ValueHash string
	Envelope  string
	CreatedAt time.Time
	ExpiresAt *time.Time
	RevokedAt *time.Time
}

// IsExpired checks if the token has expired. All time comparisons use UTC.
func (t *Token) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return time.Now().UTC().After(t.ExpiresAt.UTC())
}

// IsRevoked checks if the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsValid checks if the token is valid (not expired and not revoked).
func (t *Token) IsValid() bool {
	return !t.IsExpired() && !t.IsRevoked()
}
