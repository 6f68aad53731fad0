// Package http provides HTTP handlers for the PII protection operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacy/internal/httputil"
	"github.com/allisson/privacy/internal/masking"
	"github.com/allisson/privacy/internal/protection/http/dto"
	protectionUseCase "github.com/allisson/privacy/internal/protection/usecase"
	customValidation "github.com/allisson/privacy/internal/validation"
)

// PIIHandler handles HTTP requests for the PII protection operations.
type PIIHandler struct {
	useCase protectionUseCase.ProtectionUseCase
	logger  *slog.Logger
}

// NewPIIHandler creates a new PII handler with required dependencies.
func NewPIIHandler(
	useCase protectionUseCase.ProtectionUseCase,
	logger *slog.Logger,
) *PIIHandler {
	return &PIIHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes attaches the PII protection routes to a router group.
func (h *PIIHandler) RegisterRoutes(group *gin.RouterGroup) {
	pii := group.Group("/pii")
	pii.POST("/mask", h.MaskHandler)
	pii.POST("/hash", h.HashHandler)
	pii.POST("/encrypt", h.EncryptHandler)
	pii.POST("/decrypt", h.DecryptHandler)
	pii.POST("/detect", h.DetectHandler)
	pii.POST("/redact", h.RedactHandler)
	pii.POST("/anonymous-id", h.AnonymousIDHandler)
	pii.POST("/anonymize", h.AnonymizeHandler)
	pii.POST("/export", h.ExportHandler)
	pii.POST("/deletion", h.DeletionHandler)
}

// MaskHandler applies a masking rule to a value.
// POST /v1/pii/mask - Returns 200 OK with the masked value.
func (h *PIIHandler) MaskHandler(c *gin.Context) {
	var req dto.MaskRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	masked, err := h.useCase.Mask(c.Request.Context(), req.Value, masking.Rule(req.Rule))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MaskResponse{Masked: masked})
}

// HashHandler returns the SHA-256 digest of a value, optionally salted.
// POST /v1/pii/hash - Returns 200 OK with the hex digest.
func (h *PIIHandler) HashHandler(c *gin.Context) {
	var req dto.HashRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	digest, err := h.useCase.Hash(c.Request.Context(), req.Value, req.Salt)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.HashResponse{Hash: digest})
}

// EncryptHandler seals a plaintext into a base64 envelope.
// POST /v1/pii/encrypt - Returns 200 OK with the envelope.
func (h *PIIHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	envelope, err := h.useCase.Encrypt(c.Request.Context(), req.Plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{Envelope: envelope})
}

// DecryptHandler opens an envelope produced by the encrypt operation.
// POST /v1/pii/decrypt - Returns 200 OK with the plaintext.
func (h *PIIHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.useCase.Decrypt(c.Request.Context(), req.Envelope)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Plaintext: plaintext})
}

// DetectHandler scans free text for PII patterns.
// POST /v1/pii/detect - Returns 200 OK with the findings.
func (h *PIIHandler) DetectHandler(c *gin.Context) {
	var req dto.DetectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	findings, err := h.useCase.Detect(c.Request.Context(), req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFindingsToResponse(findings))
}

// RedactHandler replaces detected PII in free text with typed placeholders.
// POST /v1/pii/redact - Returns 200 OK with the redacted text.
func (h *PIIHandler) RedactHandler(c *gin.Context) {
	var req dto.RedactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	redacted, err := h.useCase.Redact(c.Request.Context(), req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RedactResponse{Redacted: redacted})
}

// AnonymousIDHandler derives the stable pseudonym for a user identifier.
// POST /v1/pii/anonymous-id - Returns 200 OK with the pseudonym.
func (h *PIIHandler) AnonymousIDHandler(c *gin.Context) {
	var req dto.AnonymousIDRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.useCase.AnonymousID(c.Request.Context(), req.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AnonymousIDResponse{AnonymousID: id})
}

// AnonymizeHandler replaces the named fields of a record.
// POST /v1/pii/anonymize - Returns 200 OK with the rewritten record.
func (h *PIIHandler) AnonymizeHandler(c *gin.Context) {
	var req dto.AnonymizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.useCase.AnonymizeRecord(c.Request.Context(), req.Record, req.Fields, req.Replacements)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RecordResponse{Record: record})
}

// ExportHandler rewrites a record for a data-portability request.
// POST /v1/pii/export - Returns 200 OK with the export-safe record.
func (h *PIIHandler) ExportHandler(c *gin.Context) {
	var req dto.ExportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.useCase.PrepareForExport(c.Request.Context(), req.Table, req.Record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RecordResponse{Record: record})
}

// DeletionHandler rewrites a record for a right-to-be-forgotten request.
// POST /v1/pii/deletion - Returns 200 OK with the deletion-safe record.
func (h *PIIHandler) DeletionHandler(c *gin.Context) {
	var req dto.DeletionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.useCase.PrepareForDeletion(c.Request.Context(), req.Table, req.UserID, req.Record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RecordResponse{Record: record})
}
