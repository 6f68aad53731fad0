// Package protection exposes the PII protection operations as a use case
// layer: masking, hashing, envelope encryption, detection, redaction, and
// the anonymization workflows (export and deletion). It composes the pure
// engine packages and is the surface the HTTP handlers call.
package protection
