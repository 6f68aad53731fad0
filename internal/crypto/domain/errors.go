package domain

import (
	"github.com/allisson/privacy/internal/errors"
)

// Cryptographic operation errors. All wrap the standard domain errors from
// internal/errors so handlers can map them to HTTP status codes.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm
	// is not supported. Supported: aes-gcm, chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyMaterialRequired indicates an empty passphrase was supplied to
	// a key-derivation operation.
	ErrKeyMaterialRequired = errors.Wrap(errors.ErrInvalidInput, "key material is required")

	// ErrInvalidEnvelope indicates a ciphertext envelope is not valid
	// base64 or is too short to contain salt, nonce, and tag.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid ciphertext envelope")

	// ErrDecryptionFailed indicates authentication-tag verification failed.
	// This means a wrong key or tampered/corrupted ciphertext; the specific
	// cause is deliberately not disclosed. Treat as a security event and
	// never retry with the same inputs.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
