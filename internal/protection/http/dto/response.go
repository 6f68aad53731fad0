// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/allisson/privacy/internal/detection"
)

// MaskResponse contains the result of a masking operation.
type MaskResponse struct {
	Masked string `json:"masked"`
}

// HashResponse contains the result of a hashing operation.
type HashResponse struct {
	Hash string `json:"hash"`
}

// EncryptResponse contains the result of an envelope encryption operation.
type EncryptResponse struct {
	Envelope string `json:"envelope"` // Base64(salt || nonce || ciphertext)
}

// DecryptResponse contains the result of an envelope decryption operation.
// SECURITY: The Plaintext field contains sensitive data and should be transmitted over HTTPS.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// FindingResponse represents one detected PII substring.
type FindingResponse struct {
	Type  string `json:"type"`
	Match string `json:"match"`
	Index int    `json:"index"`
}

// DetectResponse contains the findings of a PII scan.
type DetectResponse struct {
	Findings []FindingResponse `json:"findings"`
}

// MapFindingsToResponse converts detection findings to an API response.
func MapFindingsToResponse(findings []detection.Finding) DetectResponse {
	out := DetectResponse{Findings: make([]FindingResponse, 0, len(findings))}
	for _, finding := range findings {
		out.Findings = append(out.Findings, FindingResponse{
			Type:  string(finding.Type),
			Match: finding.Match,
			Index: finding.Index,
		})
	}
	return out
}

// RedactResponse contains the redacted text.
type RedactResponse struct {
	Redacted string `json:"redacted"`
}

// AnonymousIDResponse contains a derived pseudonym.
type AnonymousIDResponse struct {
	AnonymousID string `json:"anonymous_id"`
}

// RecordResponse contains a rewritten record.
type RecordResponse struct {
	Record map[string]any `json:"record"`
}
