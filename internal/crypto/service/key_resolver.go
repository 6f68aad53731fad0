package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"

	// Register KMS provider drivers for secrets.OpenKeeper.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyResolver resolves the service encryption passphrase at startup.
//
// The engine itself never manages key lifecycle; key material is supplied
// by the caller. This resolver is service-level bootstrap only: it either
// passes a plain passphrase through, or unwraps a KMS-wrapped passphrase
// using gocloud.dev/secrets (gcpkms://, awskms://, azurekeyvault://,
// hashivault://, base64key://).
type KeyResolver struct{}

// NewKeyResolver creates a new KeyResolver.
func NewKeyResolver() *KeyResolver {
	return &KeyResolver{}
}

// Resolve returns the passphrase to use for envelope encryption.
//
// When keyURI and wrapped are both set, wrapped is treated as the raw
// KMS-encrypted passphrase and decrypted via the keeper at keyURI.
// Otherwise plain is returned as-is. An empty result is an error: the
// service cannot encrypt without key material.
func (r *KeyResolver) Resolve(ctx context.Context, keyURI string, wrapped []byte, plain string) (string, error) {
	if keyURI != "" && len(wrapped) > 0 {
		keeper, err := secrets.OpenKeeper(ctx, keyURI)
		if err != nil {
			return "", fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer keeper.Close()

		passphrase, err := keeper.Decrypt(ctx, wrapped)
		if err != nil {
			return "", fmt.Errorf("failed to unwrap key material: %w", err)
		}
		defer cryptoDomain.Zero(passphrase)

		if len(passphrase) == 0 {
			return "", cryptoDomain.ErrKeyMaterialRequired
		}
		return string(passphrase), nil
	}

	if plain == "" {
		return "", cryptoDomain.ErrKeyMaterialRequired
	}
	return plain, nil
}
