// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacy/internal/validation"
)

// MaskRequest contains the parameters for masking a value.
type MaskRequest struct {
	Value string `json:"value"`
	// Rule selects the masking algorithm. Unknown rules degrade to
	// partial masking.
	Rule string `json:"rule"`
}

// Validate checks if the mask request is valid.
func (r *MaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// HashRequest contains the parameters for hashing a value.
type HashRequest struct {
	Value string `json:"value"`
	Salt  string `json:"salt,omitempty"`
}

// Validate checks if the hash request is valid.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// EncryptRequest contains the parameters for envelope encryption.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// DecryptRequest contains the parameters for envelope decryption.
type DecryptRequest struct {
	Envelope string `json:"envelope"` // Base64 envelope from the encrypt operation
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Envelope,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}

// DetectRequest contains the text to scan for PII.
type DetectRequest struct {
	Text string `json:"text"`
}

// Validate checks if the detect request is valid.
func (r *DetectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required),
	)
}

// RedactRequest contains the text to redact.
type RedactRequest struct {
	Text string `json:"text"`
}

// Validate checks if the redact request is valid.
func (r *RedactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required),
	)
}

// AnonymousIDRequest contains the user identifier to pseudonymize.
type AnonymousIDRequest struct {
	UserID string `json:"user_id"`
}

// Validate checks if the anonymous ID request is valid.
func (r *AnonymousIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// AnonymizeRequest contains a record and the fields to anonymize.
type AnonymizeRequest struct {
	Record       map[string]any `json:"record"`
	Fields       []string       `json:"fields"`
	Replacements map[string]any `json:"replacements,omitempty"`
}

// Validate checks if the anonymize request is valid.
func (r *AnonymizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Record, validation.Required),
		validation.Field(&r.Fields, validation.Required),
	)
}

// ExportRequest contains a record to prepare for a data-portability export.
type ExportRequest struct {
	Table  string         `json:"table"`
	Record map[string]any `json:"record"`
}

// Validate checks if the export request is valid.
func (r *ExportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Table,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Record, validation.Required),
	)
}

// DeletionRequest contains a record to prepare for a right-to-be-forgotten
// deletion.
type DeletionRequest struct {
	Table  string         `json:"table"`
	UserID string         `json:"user_id"`
	Record map[string]any `json:"record"`
}

// Validate checks if the deletion request is valid.
func (r *DeletionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Table,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Record, validation.Required),
	)
}
