// Package tokenization replaces sensitive values with opaque surrogate
// tokens. The original value is stored only as an authenticated encryption
// envelope plus a salted hash used for deterministic lookup, so the same
// value always maps to the same live token and the plaintext never rests
// in the vault.
package tokenization
