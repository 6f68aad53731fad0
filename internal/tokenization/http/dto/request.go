// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacy/internal/validation"
)

// TokenizeRequest contains the parameters for tokenizing a value.
type TokenizeRequest struct {
	Value string `json:"value"`
	// ExpiresAt optionally bounds the token lifetime.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Validate checks if the tokenize request is valid.
func (r *TokenizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// DetokenizeRequest contains the token to resolve back to its value.
type DetokenizeRequest struct {
	Token string `json:"token"`
}

// Validate checks if the detokenize request is valid.
func (r *DetokenizeRequest) Validate() error {
	return validateToken(&r.Token, r)
}

// ValidateTokenRequest contains the token to check.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the validate token request is valid.
func (r *ValidateTokenRequest) Validate() error {
	return validateToken(&r.Token, r)
}

// RevokeTokenRequest contains the token to revoke.
type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the revoke token request is valid.
func (r *RevokeTokenRequest) Validate() error {
	return validateToken(&r.Token, r)
}

func validateToken(field *string, structPtr interface{}) error {
	return validation.ValidateStruct(structPtr,
		validation.Field(field,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
