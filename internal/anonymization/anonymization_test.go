package anonymization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/privacy/internal/catalog"
	"github.com/allisson/privacy/internal/masking"
)

func TestAnonymizer_AnonymousID(t *testing.T) {
	anonymizer := New("salt-1")

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, anonymizer.AnonymousID("user-1"), anonymizer.AnonymousID("user-1"))
	})

	t.Run("DifferentUsersDiffer", func(t *testing.T) {
		assert.NotEqual(t, anonymizer.AnonymousID("user-1"), anonymizer.AnonymousID("user-2"))
	})

	t.Run("SaltChangesPseudonym", func(t *testing.T) {
		other := New("salt-2")
		assert.NotEqual(t, anonymizer.AnonymousID("user-1"), other.AnonymousID("user-1"))
	})

	t.Run("Format", func(t *testing.T) {
		id := anonymizer.AnonymousID("user-1")
		assert.True(t, strings.HasPrefix(id, "anon_"))
		assert.Len(t, id, len("anon_")+16)
		assert.NotContains(t, id, "user-1")
	})
}

func TestAnonymizer_AnonymizeRecord(t *testing.T) {
	anonymizer := New("salt")

	t.Run("DefaultMarker", func(t *testing.T) {
		record := Record{"email": "john@example.com", "age": 30}
		out := anonymizer.AnonymizeRecord(record, []string{"email"}, nil)

		assert.Equal(t, "[REDACTED]", out["email"])
		assert.Equal(t, 30, out["age"])
	})

	t.Run("CallerReplacementWins", func(t *testing.T) {
		record := Record{"email": "john@example.com"}
		out := anonymizer.AnonymizeRecord(record, []string{"email"}, Record{"email": "removed"})

		assert.Equal(t, "removed", out["email"])
	})

	t.Run("AbsentFieldNotAdded", func(t *testing.T) {
		record := Record{"email": "john@example.com"}
		out := anonymizer.AnonymizeRecord(record, []string{"phone"}, nil)

		_, ok := out["phone"]
		assert.False(t, ok)
	})

	t.Run("OriginalUntouched", func(t *testing.T) {
		record := Record{"email": "john@example.com"}
		_ = anonymizer.AnonymizeRecord(record, []string{"email"}, nil)

		assert.Equal(t, "john@example.com", record["email"])
	})
}

func TestAnonymizer_PrepareForExport(t *testing.T) {
	anonymizer := New("salt")

	fields := []catalog.Field{
		{
			TableName:   "users",
			ColumnName:  "ssn",
			Category:    catalog.CategoryIdentifier,
			Sensitivity: catalog.SensitivityHighlySensitive,
			MaskingRule: masking.RuleSSN,
		},
		{
			TableName:   "users",
			ColumnName:  "api_secret",
			Category:    catalog.CategoryIdentifier,
			Sensitivity: catalog.SensitivityHighlySensitive,
		},
		{
			TableName:   "users",
			ColumnName:  "email",
			Category:    catalog.CategoryIdentifier,
			Sensitivity: catalog.SensitivitySensitive,
			MaskingRule: masking.RuleEmail,
		},
	}

	record := Record{
		"ssn":        "123-45-6789",
		"api_secret": "super-secret",
		"email":      "john@example.com",
		"name":       "John",
	}

	out := anonymizer.PrepareForExport(record, fields)

	// Highly sensitive: masked with the declared rule.
	assert.Equal(t, "***-**-6789", out["ssn"])
	// Highly sensitive without a rule: fully masked.
	assert.NotContains(t, out["api_secret"], "super-secret")
	assert.Equal(t, strings.Repeat("*", len("super-secret")), out["api_secret"])
	// Sensitive but not highly sensitive: exported in clear.
	assert.Equal(t, "john@example.com", out["email"])
	// Undeclared fields untouched.
	assert.Equal(t, "John", out["name"])
}

func TestAnonymizer_PrepareForDeletion(t *testing.T) {
	anonymizer := New("salt")

	field := func(column string, category catalog.Category) catalog.Field {
		return catalog.Field{
			TableName:   "users",
			ColumnName:  column,
			Category:    category,
			Sensitivity: catalog.SensitivityStandard,
		}
	}

	t.Run("CategoryPolicyTable", func(t *testing.T) {
		record := Record{
			"ssn":         "123-45-6789",
			"iban":        "DE89370400440532013000",
			"blood_type":  "A+",
			"fingerprint": "minutiae-data",
			"genome":      "ACGT",
			"city":        "Chicago",
			"click_trail": "a,b,c",
		}
		fields := []catalog.Field{
			field("ssn", catalog.CategoryIdentifier),
			field("iban", catalog.CategoryFinancial),
			field("blood_type", catalog.CategoryHealth),
			field("fingerprint", catalog.CategoryBiometric),
			field("genome", catalog.CategoryGenetic),
			field("city", catalog.CategoryLocation),
			field("click_trail", catalog.CategoryBehavioral),
		}

		out := anonymizer.PrepareForDeletion(record, "user-1", fields)

		wantID := anonymizer.AnonymousID("user-1")
		assert.Equal(t, "deleted:"+wantID, out["ssn"])
		assert.Equal(t, "[DELETED]", out["iban"])
		assert.Equal(t, "[DELETED]", out["blood_type"])
		assert.Equal(t, "[DELETED]", out["fingerprint"])
		assert.Equal(t, "[DELETED]", out["genome"])
		assert.Equal(t, "[LOCATION_DELETED]", out["city"])
		assert.Equal(t, "", out["click_trail"])
	})

	t.Run("IdentifierStaysLinkable", func(t *testing.T) {
		recordA := Record{"ssn": "123-45-6789"}
		recordB := Record{"user_key": "abc"}
		fields := []catalog.Field{field("ssn", catalog.CategoryIdentifier)}
		fieldsB := []catalog.Field{field("user_key", catalog.CategoryIdentifier)}

		outA := anonymizer.PrepareForDeletion(recordA, "user-1", fields)
		outB := anonymizer.PrepareForDeletion(recordB, "user-1", fieldsB)

		// Same subject, same pseudonym across records.
		assert.Equal(t, outA["ssn"], outB["user_key"])
	})

	t.Run("UndeclaredFieldsUntouched", func(t *testing.T) {
		record := Record{"ssn": "123-45-6789", "note": "keep me"}
		fields := []catalog.Field{field("ssn", catalog.CategoryIdentifier)}

		out := anonymizer.PrepareForDeletion(record, "user-1", fields)
		assert.Equal(t, "keep me", out["note"])
	})
}
