// Package catalog models the declarative catalog of sensitive columns.
//
// The catalog is authored by policy owners and supplied through
// configuration; the engine only reads it. Each entry declares where a PII
// value lives (table/column), what kind of data it is (category), how
// sensitive it is, and optionally which masking rule renders it for display.
package catalog

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/masking"
)

// Category classifies the kind of personal data a field holds. The set is
// closed: policy code switches over it exhaustively, so a new category
// forces every policy site to be updated.
type Category string

const (
	CategoryIdentifier Category = "identifier"
	CategoryFinancial  Category = "financial"
	CategoryHealth     Category = "health"
	CategoryBiometric  Category = "biometric"
	CategoryGenetic    Category = "genetic"
	CategoryLocation   Category = "location"
	CategoryBehavioral Category = "behavioral"
)

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryIdentifier, CategoryFinancial, CategoryHealth,
		CategoryBiometric, CategoryGenetic, CategoryLocation, CategoryBehavioral:
		return Category(s), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "unknown PII category: "+s)
	}
}

// Sensitivity grades how strictly a field is handled during export.
type Sensitivity string

const (
	SensitivityStandard        Sensitivity = "standard"
	SensitivitySensitive       Sensitivity = "sensitive"
	SensitivityHighlySensitive Sensitivity = "highly_sensitive"
)

// ParseSensitivity converts a string into a Sensitivity.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch Sensitivity(s) {
	case SensitivityStandard, SensitivitySensitive, SensitivityHighlySensitive:
		return Sensitivity(s), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "unknown sensitivity level: "+s)
	}
}

// Field declares one sensitive column. Read-only to the engine.
type Field struct {
	TableName   string       `json:"table_name"`
	ColumnName  string       `json:"column_name"`
	Category    Category     `json:"category"`
	Sensitivity Sensitivity  `json:"sensitivity_level"`
	MaskingRule masking.Rule `json:"masking_rule,omitempty"`
	// RetentionDays is advisory retention metadata for compliance tooling;
	// the engine itself never deletes data.
	RetentionDays int `json:"retention_days,omitempty"`
}

// Validate checks that the field declaration is well formed.
func (f Field) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.TableName, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.ColumnName, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.Category, validation.Required, validation.By(validateCategory)),
		validation.Field(&f.Sensitivity, validation.Required, validation.By(validateSensitivity)),
		validation.Field(&f.MaskingRule, validation.By(validateMaskingRule)),
		validation.Field(&f.RetentionDays, validation.Min(0)),
	)
}

func validateCategory(value any) error {
	c, _ := value.(Category)
	if _, err := ParseCategory(string(c)); err != nil {
		return validation.NewError("validation_pii_category", "must be a known PII category")
	}
	return nil
}

func validateSensitivity(value any) error {
	s, _ := value.(Sensitivity)
	if _, err := ParseSensitivity(string(s)); err != nil {
		return validation.NewError("validation_sensitivity", "must be a known sensitivity level")
	}
	return nil
}

func validateMaskingRule(value any) error {
	r, _ := value.(masking.Rule)
	if r == "" {
		return nil
	}
	if _, ok := masking.ParseRule(string(r)); !ok {
		return validation.NewError("validation_masking_rule", "must be a known masking rule")
	}
	return nil
}

// Catalog is an immutable, indexed set of field declarations.
type Catalog struct {
	fields []Field
	index  map[string]Field
}

// New builds a Catalog after validating every field declaration.
func New(fields []Field) (*Catalog, error) {
	index := make(map[string]Field, len(fields))
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
		}
		index[fieldKey(f.TableName, f.ColumnName)] = f
	}
	return &Catalog{fields: fields, index: index}, nil
}

// Lookup returns the declaration for table.column, if any.
func (c *Catalog) Lookup(table, column string) (Field, bool) {
	f, ok := c.index[fieldKey(table, column)]
	return f, ok
}

// FieldsForTable returns all declarations for a table.
func (c *Catalog) FieldsForTable(table string) []Field {
	var out []Field
	for _, f := range c.fields {
		if f.TableName == table {
			out = append(out, f)
		}
	}
	return out
}

// Fields returns all declarations.
func (c *Catalog) Fields() []Field {
	return c.fields
}

// Len returns the number of declarations.
func (c *Catalog) Len() int {
	return len(c.fields)
}

func fieldKey(table, column string) string {
	return table + "." + column
}
