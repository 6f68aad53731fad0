package usecase

import (
	"context"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/catalog"
	cryptoService "github.com/allisson/privacy/internal/crypto/service"
	"github.com/allisson/privacy/internal/detection"
	"github.com/allisson/privacy/internal/hashing"
	"github.com/allisson/privacy/internal/masking"
	"github.com/allisson/privacy/internal/protection/domain"
)

// protectionUseCase implements ProtectionUseCase over the pure engine
// packages.
type protectionUseCase struct {
	anonymizer  *anonymization.Anonymizer
	catalog     *catalog.Catalog
	encrypter   cryptoService.Encrypter
	keyMaterial string
}

// NewProtectionUseCase creates a new ProtectionUseCase.
func NewProtectionUseCase(
	anonymizer *anonymization.Anonymizer,
	piiCatalog *catalog.Catalog,
	encrypter cryptoService.Encrypter,
	keyMaterial string,
) ProtectionUseCase {
	return &protectionUseCase{
		anonymizer:  anonymizer,
		catalog:     piiCatalog,
		encrypter:   encrypter,
		keyMaterial: keyMaterial,
	}
}

func (p *protectionUseCase) Mask(ctx context.Context, value string, rule masking.Rule) (string, error) {
	if value == "" {
		return "", domain.ErrValueRequired
	}
	return masking.Mask(value, rule, masking.DefaultOptions()), nil
}

func (p *protectionUseCase) Hash(ctx context.Context, value, salt string) (string, error) {
	if value == "" {
		return "", domain.ErrValueRequired
	}
	if salt == "" {
		return hashing.Hash(value), nil
	}
	return hashing.HashWithSalt(value, salt), nil
}

func (p *protectionUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrValueRequired
	}
	return p.encrypter.Encrypt(plaintext, p.keyMaterial)
}

func (p *protectionUseCase) Decrypt(ctx context.Context, envelope string) (string, error) {
	if envelope == "" {
		return "", domain.ErrValueRequired
	}
	return p.encrypter.Decrypt(envelope, p.keyMaterial)
}

func (p *protectionUseCase) Detect(ctx context.Context, text string) ([]detection.Finding, error) {
	return detection.Detect(text), nil
}

func (p *protectionUseCase) Redact(ctx context.Context, text string) (string, error) {
	return detection.Redact(text), nil
}

func (p *protectionUseCase) AnonymousID(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUserIDRequired
	}
	return p.anonymizer.AnonymousID(userID), nil
}

func (p *protectionUseCase) AnonymizeRecord(
	ctx context.Context,
	record anonymization.Record,
	fields []string,
	replacements anonymization.Record,
) (anonymization.Record, error) {
	return p.anonymizer.AnonymizeRecord(record, fields, replacements), nil
}

func (p *protectionUseCase) PrepareForExport(
	ctx context.Context,
	table string,
	record anonymization.Record,
) (anonymization.Record, error) {
	fields, err := p.catalogFields(table)
	if err != nil {
		return nil, err
	}
	return p.anonymizer.PrepareForExport(record, fields), nil
}

func (p *protectionUseCase) PrepareForDeletion(
	ctx context.Context,
	table, userID string,
	record anonymization.Record,
) (anonymization.Record, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	fields, err := p.catalogFields(table)
	if err != nil {
		return nil, err
	}
	return p.anonymizer.PrepareForDeletion(record, userID, fields), nil
}

// catalogFields returns the cataloged PII fields for a table. Tables with
// no declared fields are rejected so callers cannot silently skip the
// export and deletion policies.
func (p *protectionUseCase) catalogFields(table string) ([]catalog.Field, error) {
	if table == "" {
		return nil, domain.ErrValueRequired
	}
	fields := p.catalog.FieldsForTable(table)
	if len(fields) == 0 {
		return nil, domain.ErrTableNotCataloged
	}
	return fields, nil
}
