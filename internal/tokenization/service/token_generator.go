// Package service provides token generation for the tokenization vault.
package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/tokenization/domain"
)

const (
	// TokenPrefix marks generated tokens so they are recognizable in logs
	// and data stores without being mistaken for real values.
	TokenPrefix = "tok_"

	// tokenRandomBytes is the entropy per token (128 bits).
	tokenRandomBytes = 16
)

// TokenGenerator produces opaque surrogate tokens.
type TokenGenerator interface {
	Generate() (string, error)
}

// RandomTokenGenerator generates tokens of the form tok_<32 hex chars>
// from a CSPRNG. Collisions are left to the storage layer's unique
// constraint rather than checked here.
type RandomTokenGenerator struct{}

// NewRandomTokenGenerator creates a RandomTokenGenerator.
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}

// Generate returns a fresh random token.
func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate token")
	}
	return TokenPrefix + hex.EncodeToString(buf), nil
}

// ValidateFormat checks that a string is a well-formed token without
// touching storage.
func ValidateFormat(token string) error {
	if !strings.HasPrefix(token, TokenPrefix) {
		return domain.ErrInvalidTokenFormat
	}
	body := strings.TrimPrefix(token, TokenPrefix)
	if len(body) != tokenRandomBytes*2 {
		return domain.ErrInvalidTokenFormat
	}
	if _, err := hex.DecodeString(body); err != nil {
		return domain.ErrInvalidTokenFormat
	}
	return nil
}
