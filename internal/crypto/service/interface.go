// Package service provides the cryptographic services behind the PII
// protection engine: AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305),
// passphrase-based envelope encryption, and key-material resolution.
package service

import (
	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Encrypter provides passphrase-based authenticated encryption producing
// self-describing ciphertext envelopes.
type Encrypter interface {
	// Encrypt derives a key from keyMaterial and a fresh salt, encrypts
	// plaintext, and returns a base64 envelope (salt || nonce || ciphertext).
	Encrypt(plaintext, keyMaterial string) (string, error)

	// Decrypt reverses Encrypt. Returns ErrDecryptionFailed when the
	// authentication tag does not verify.
	Decrypt(envelope, keyMaterial string) (string, error)
}
