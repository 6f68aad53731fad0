// Package anonymization rewrites structured records for privacy
// workflows: field redaction, data-portability exports, and
// right-to-be-forgotten deletion. It composes the masking and hashing
// packages; it never stores anything itself.
package anonymization

import (
	"fmt"

	"github.com/allisson/privacy/internal/catalog"
	"github.com/allisson/privacy/internal/hashing"
	"github.com/allisson/privacy/internal/masking"
)

const (
	// DefaultRedactionMarker replaces anonymized fields when the caller
	// supplies no replacement.
	DefaultRedactionMarker = "[REDACTED]"

	// anonymousIDPrefix marks derived pseudonyms.
	anonymousIDPrefix = "anon_"

	// anonymousIDHexLen is how many hex digits of the digest survive into
	// the pseudonym. 64 bits is enough to keep collisions implausible at
	// any realistic user count while staying readable in audit logs.
	anonymousIDHexLen = 16

	// Deletion policy markers. These are a category-keyed policy table,
	// not masking: identifier fields keep an audit-linkable pseudonym,
	// special-category data becomes a fixed marker, location gets its own
	// marker, and behavioral data is cleared outright. The asymmetry is
	// deliberate policy and load-bearing for compliance audits.
	deletedIDPrefix        = "deleted:"
	deletionMarker         = "[DELETED]"
	locationDeletionMarker = "[LOCATION_DELETED]"
)

// Record is a flat field map, the shape handed over by callers that own
// persistence.
type Record = map[string]any

// Anonymizer derives pseudonyms and rewrites records. The salt must stay
// stable across the deployment or anonymous IDs stop being linkable.
type Anonymizer struct {
	salt string
}

// New creates an Anonymizer with the given pseudonym salt.
func New(salt string) *Anonymizer {
	return &Anonymizer{salt: salt}
}

// AnonymousID derives a stable pseudonym for a user identifier. The same
// (userID, salt) pair always yields the same pseudonym, so deleted records
// stay linkable in audit trails without retaining the real identifier.
func (a *Anonymizer) AnonymousID(userID string) string {
	digest := hashing.HashWithSalt(userID, a.salt)
	return anonymousIDPrefix + digest[:anonymousIDHexLen]
}

// AnonymizeRecord returns a shallow copy of record with each named field
// replaced. A replacement from the replacements map wins; otherwise the
// field becomes DefaultRedactionMarker. Fields not named, and named fields
// absent from the record, are untouched.
func (a *Anonymizer) AnonymizeRecord(record Record, fields []string, replacements Record) Record {
	out := cloneRecord(record)
	for _, field := range fields {
		if _, ok := out[field]; !ok {
			continue
		}
		if replacement, ok := replacements[field]; ok {
			out[field] = replacement
		} else {
			out[field] = DefaultRedactionMarker
		}
	}
	return out
}

// PrepareForExport rewrites a record for a data-portability request.
// Fields declared highly_sensitive are masked with their declared rule
// (full masking when none is declared); everything else is exported in
// clear, since the data subject is reading their own data.
func (a *Anonymizer) PrepareForExport(record Record, fields []catalog.Field) Record {
	out := cloneRecord(record)
	for _, field := range fields {
		if field.Sensitivity != catalog.SensitivityHighlySensitive {
			continue
		}
		value, ok := out[field.ColumnName]
		if !ok {
			continue
		}

		rule := field.MaskingRule
		if rule == "" {
			rule = masking.RuleFull
		}
		out[field.ColumnName] = masking.Mask(toString(value), rule, masking.DefaultOptions())
	}
	return out
}

// PrepareForDeletion rewrites a record for a right-to-be-forgotten
// request, applying the category policy table. The switch is exhaustive
// over the closed category set; extending the set means extending this
// policy.
func (a *Anonymizer) PrepareForDeletion(record Record, userID string, fields []catalog.Field) Record {
	out := cloneRecord(record)
	for _, field := range fields {
		if _, ok := out[field.ColumnName]; !ok {
			continue
		}
		out[field.ColumnName] = a.deletionValue(field.Category, userID)
	}
	return out
}

func (a *Anonymizer) deletionValue(category catalog.Category, userID string) any {
	switch category {
	case catalog.CategoryIdentifier:
		return deletedIDPrefix + a.AnonymousID(userID)
	case catalog.CategoryFinancial, catalog.CategoryHealth,
		catalog.CategoryBiometric, catalog.CategoryGenetic:
		return deletionMarker
	case catalog.CategoryLocation:
		return locationDeletionMarker
	case catalog.CategoryBehavioral:
		return ""
	default:
		// Catalog validation rejects unknown categories before records
		// reach this point; refuse to leak the value regardless.
		return deletionMarker
	}
}

func cloneRecord(record Record) Record {
	out := make(Record, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
