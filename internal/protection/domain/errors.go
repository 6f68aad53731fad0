// Package domain defines errors for the PII protection operations.
package domain

import (
	"github.com/allisson/privacy/internal/errors"
)

var (
	// ErrValueRequired indicates an empty value was submitted.
	ErrValueRequired = errors.Wrap(errors.ErrInvalidInput, "value must not be blank")

	// ErrUserIDRequired indicates a missing user identifier for
	// anonymization.
	ErrUserIDRequired = errors.Wrap(errors.ErrInvalidInput, "user id must not be blank")

	// ErrTableNotCataloged indicates the table has no PII fields declared
	// in the catalog, so export and deletion policies cannot be applied.
	ErrTableNotCataloged = errors.Wrap(errors.ErrNotFound, "table has no cataloged PII fields")
)
