// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/privacy/internal/tokenization/domain"
)

// TokenResponse represents a token in API responses. The tokenized value
// itself is never included.
type TokenResponse struct {
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *domain.Token) TokenResponse {
	return TokenResponse{
		Token:     token.Token,
		CreatedAt: token.CreatedAt,
		ExpiresAt: token.ExpiresAt,
	}
}

// DetokenizeResponse contains the original value for a token.
// SECURITY: The Value field contains sensitive data and should be transmitted over HTTPS.
type DetokenizeResponse struct {
	Value string `json:"value"`
}

// ValidateTokenResponse reports whether a token is currently valid.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}
