// Package usecase implements the business logic for PII protection
// operations.
package usecase

import (
	"context"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/detection"
	"github.com/allisson/privacy/internal/masking"
)

// ProtectionUseCase defines the PII protection operations.
type ProtectionUseCase interface {
	// Mask applies a masking rule to a value. Unknown rules degrade to
	// partial masking with default options, never to the raw value.
	Mask(ctx context.Context, value string, rule masking.Rule) (string, error)

	// Hash returns the hex SHA-256 digest of a value. When salt is
	// non-empty the digest covers value || salt.
	Hash(ctx context.Context, value, salt string) (string, error)

	// Encrypt seals a plaintext into a base64 envelope using the service
	// key material.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt.
	Decrypt(ctx context.Context, envelope string) (string, error)

	// Detect scans free text for PII patterns.
	Detect(ctx context.Context, text string) ([]detection.Finding, error)

	// Redact replaces detected PII in free text with typed placeholders.
	Redact(ctx context.Context, text string) (string, error)

	// AnonymousID derives the stable pseudonym for a user identifier.
	AnonymousID(ctx context.Context, userID string) (string, error)

	// AnonymizeRecord replaces the named fields of a record with caller
	// replacements or the default redaction marker.
	AnonymizeRecord(
		ctx context.Context,
		record anonymization.Record,
		fields []string,
		replacements anonymization.Record,
	) (anonymization.Record, error)

	// PrepareForExport rewrites a record for a data-portability request
	// using the PII catalog entries for the table.
	PrepareForExport(ctx context.Context, table string, record anonymization.Record) (anonymization.Record, error)

	// PrepareForDeletion rewrites a record for a right-to-be-forgotten
	// request using the category policy for each cataloged field.
	PrepareForDeletion(
		ctx context.Context,
		table, userID string,
		record anonymization.Record,
	) (anonymization.Record, error)
}
