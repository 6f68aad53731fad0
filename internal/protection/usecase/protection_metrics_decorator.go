package usecase

import (
	"context"
	"time"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/detection"
	"github.com/allisson/privacy/internal/masking"
	"github.com/allisson/privacy/internal/metrics"
)

// protectionUseCaseWithMetrics decorates ProtectionUseCase with metrics
// instrumentation.
type protectionUseCaseWithMetrics struct {
	next    ProtectionUseCase
	metrics metrics.BusinessMetrics
}

// NewProtectionUseCaseWithMetrics wraps a ProtectionUseCase with metrics
// recording.
func NewProtectionUseCaseWithMetrics(
	useCase ProtectionUseCase,
	m metrics.BusinessMetrics,
) ProtectionUseCase {
	return &protectionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *protectionUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, "protection", operation, status)
	p.metrics.RecordDuration(ctx, "protection", operation, time.Since(start), status)
}

func (p *protectionUseCaseWithMetrics) Mask(
	ctx context.Context,
	value string,
	rule masking.Rule,
) (string, error) {
	start := time.Now()
	masked, err := p.next.Mask(ctx, value, rule)
	p.record(ctx, "mask", start, err)
	return masked, err
}

func (p *protectionUseCaseWithMetrics) Hash(ctx context.Context, value, salt string) (string, error) {
	start := time.Now()
	digest, err := p.next.Hash(ctx, value, salt)
	p.record(ctx, "hash", start, err)
	return digest, err
}

func (p *protectionUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	envelope, err := p.next.Encrypt(ctx, plaintext)
	p.record(ctx, "encrypt", start, err)
	return envelope, err
}

func (p *protectionUseCaseWithMetrics) Decrypt(ctx context.Context, envelope string) (string, error) {
	start := time.Now()
	plaintext, err := p.next.Decrypt(ctx, envelope)
	p.record(ctx, "decrypt", start, err)
	return plaintext, err
}

func (p *protectionUseCaseWithMetrics) Detect(ctx context.Context, text string) ([]detection.Finding, error) {
	start := time.Now()
	findings, err := p.next.Detect(ctx, text)
	p.record(ctx, "detect", start, err)
	return findings, err
}

func (p *protectionUseCaseWithMetrics) Redact(ctx context.Context, text string) (string, error) {
	start := time.Now()
	redacted, err := p.next.Redact(ctx, text)
	p.record(ctx, "redact", start, err)
	return redacted, err
}

func (p *protectionUseCaseWithMetrics) AnonymousID(ctx context.Context, userID string) (string, error) {
	start := time.Now()
	id, err := p.next.AnonymousID(ctx, userID)
	p.record(ctx, "anonymous_id", start, err)
	return id, err
}

func (p *protectionUseCaseWithMetrics) AnonymizeRecord(
	ctx context.Context,
	record anonymization.Record,
	fields []string,
	replacements anonymization.Record,
) (anonymization.Record, error) {
	start := time.Now()
	out, err := p.next.AnonymizeRecord(ctx, record, fields, replacements)
	p.record(ctx, "anonymize_record", start, err)
	return out, err
}

func (p *protectionUseCaseWithMetrics) PrepareForExport(
	ctx context.Context,
	table string,
	record anonymization.Record,
) (anonymization.Record, error) {
	start := time.Now()
	out, err := p.next.PrepareForExport(ctx, table, record)
	p.record(ctx, "prepare_for_export", start, err)
	return out, err
}

func (p *protectionUseCaseWithMetrics) PrepareForDeletion(
	ctx context.Context,
	table, userID string,
	record anonymization.Record,
) (anonymization.Record, error) {
	start := time.Now()
	out, err := p.next.PrepareForDeletion(ctx, table, userID, record)
	p.record(ctx, "prepare_for_deletion", start, err)
	return out, err
}
