package domain

import (
	"github.com/allisson/privacy/internal/errors"
)

var (
	// ErrTokenNotFound indicates the token was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenAlreadyExists indicates a token or value hash collision on insert.
	ErrTokenAlreadyExists = errors.Wrap(errors.ErrConflict, "token already exists")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.Wrap(errors.ErrInvalidInput, "token has expired")

	// ErrTokenRevoked indicates the token has been revoked.
	ErrTokenRevoked = errors.Wrap(errors.ErrInvalidInput, "token has been revoked")

	// ErrValueRequired indicates an empty value was submitted for tokenization.
	ErrValueRequired = errors.Wrap(errors.ErrInvalidInput, "value must not be blank")

	// ErrValueTooLong indicates the value exceeds the maximum allowed length.
	ErrValueTooLong = errors.Wrap(errors.ErrInvalidInput, "value exceeds maximum length")

	// ErrInvalidTokenFormat indicates the string is not a well-formed token.
	ErrInvalidTokenFormat = errors.Wrap(errors.ErrInvalidInput, "invalid token format")
)
