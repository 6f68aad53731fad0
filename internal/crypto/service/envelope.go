package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"
)

const (
	// envelopeSaltSize is the PBKDF2 salt length in bytes.
	envelopeSaltSize = 16

	// envelopeNonceSize is the AEAD nonce length in bytes.
	envelopeNonceSize = 12

	// envelopeTagSize is the AEAD authentication tag length in bytes.
	envelopeTagSize = 16

	// derivedKeySize is the derived key length in bytes (AES-256 / ChaCha20).
	derivedKeySize = 32

	// MinPBKDF2Iterations is the floor for the key-derivation iteration
	// count. Configured values below this are raised to it.
	MinPBKDF2Iterations = 100_000
)

// EnvelopeCipher provides passphrase-based authenticated encryption.
//
// Each Encrypt call generates a fresh random salt, derives a 256-bit key from
// (keyMaterial, salt) via PBKDF2-SHA256, and encrypts under a fresh nonce.
// The output envelope is base64(salt || nonce || ciphertext+tag), so
// decryption needs only the envelope and the original key material, with no
// external state. Two encryptions of the same plaintext with the same key
// produce different envelopes; that is required, not a defect.
//
// The envelope layout is a persistence format: changing the salt or nonce
// sizes, the iteration floor behavior, or the byte order breaks decryption
// of previously stored data.
type EnvelopeCipher struct {
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
	iterations  int
}

// NewEnvelopeCipher creates an EnvelopeCipher using the given algorithm and
// PBKDF2 iteration count. Iteration counts below MinPBKDF2Iterations are
// raised to the floor.
func NewEnvelopeCipher(
	aeadManager AEADManager,
	alg cryptoDomain.Algorithm,
	iterations int,
) *EnvelopeCipher {
	if iterations < MinPBKDF2Iterations {
		iterations = MinPBKDF2Iterations
	}
	return &EnvelopeCipher{
		aeadManager: aeadManager,
		alg:         alg,
		iterations:  iterations,
	}
}

// Encrypt encrypts plaintext under a key derived from keyMaterial and a
// fresh salt, returning the base64-encoded envelope.
// Returns ErrKeyMaterialRequired for an empty passphrase.
func (e *EnvelopeCipher) Encrypt(plaintext, keyMaterial string) (string, error) {
	if keyMaterial == "" {
		return "", cryptoDomain.ErrKeyMaterialRequired
	}

	salt := make([]byte, envelopeSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := e.deriveKey(keyMaterial, salt)
	defer cryptoDomain.Zero(key)

	cipher, err := e.aeadManager.CreateCipher(key, e.alg)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", err
	}

	envelope := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, ciphertext...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt decodes the envelope, re-derives the key from keyMaterial and the
// embedded salt, and decrypts.
//
// Returns ErrInvalidEnvelope for malformed input and ErrDecryptionFailed
// when the authentication tag does not verify. The latter signals a wrong
// key or tampered ciphertext and must not be retried.
func (e *EnvelopeCipher) Decrypt(envelope, keyMaterial string) (string, error) {
	if keyMaterial == "" {
		return "", cryptoDomain.ErrKeyMaterialRequired
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", cryptoDomain.ErrInvalidEnvelope
	}
	if len(raw) < envelopeSaltSize+envelopeNonceSize+envelopeTagSize {
		return "", cryptoDomain.ErrInvalidEnvelope
	}

	salt := raw[:envelopeSaltSize]
	nonce := raw[envelopeSaltSize : envelopeSaltSize+envelopeNonceSize]
	ciphertext := raw[envelopeSaltSize+envelopeNonceSize:]

	key := e.deriveKey(keyMaterial, salt)
	defer cryptoDomain.Zero(key)

	cipher, err := e.aeadManager.CreateCipher(key, e.alg)
	if err != nil {
		return "", err
	}

	plaintext, err := cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// deriveKey stretches keyMaterial into a 256-bit key via PBKDF2-SHA256.
func (e *EnvelopeCipher) deriveKey(keyMaterial string, salt []byte) []byte {
	return pbkdf2.Key([]byte(keyMaterial), salt, e.iterations, derivedKeySize, sha256.New)
}
