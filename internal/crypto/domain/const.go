package domain

// Algorithm identifies the AEAD construction used for symmetric encryption.
//
// Both supported algorithms provide Authenticated Encryption with Associated
// Data: confidentiality plus tamper detection via an integrity tag. Pick
// AESGCM on CPUs with AES-NI acceleration, ChaCha20 where hardware
// acceleration is unavailable; both give 256-bit security.
type Algorithm string

const (
	// AESGCM is AES-256 in Galois/Counter Mode: 32-byte key, 12-byte nonce,
	// 16-byte authentication tag appended to the ciphertext.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305: 32-byte key, 12-byte nonce, 16-byte
	// authentication tag. Constant-time in software.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a string into an Algorithm.
// Returns ErrUnsupportedAlgorithm for unknown values.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
