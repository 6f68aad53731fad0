// Package hashing provides one-way digests for PII values. Unsalted hashes
// are intentionally deterministic so equal values collide, which makes them
// usable for exact-match lookup and deduplication without retaining
// plaintext. Salted hashes are for callers that need resistance to
// dictionary attacks; salt generation and storage stay with the caller.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the hex-encoded SHA-256 digest of value.
// Deterministic by design: identical inputs always produce identical digests.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// HashWithSalt computes the hex-encoded SHA-256 digest of value
// concatenated with the caller-supplied salt.
func HashWithSalt(value, salt string) string {
	sum := sha256.Sum256([]byte(value + salt))
	return hex.EncodeToString(sum[:])
}
