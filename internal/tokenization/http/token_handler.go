// Package http provides HTTP handlers for tokenization operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacy/internal/httputil"
	"github.com/allisson/privacy/internal/tokenization/http/dto"
	tokenizationUseCase "github.com/allisson/privacy/internal/tokenization/usecase"
	customValidation "github.com/allisson/privacy/internal/validation"
)

// TokenHandler handles HTTP requests for tokenization operations.
type TokenHandler struct {
	useCase tokenizationUseCase.TokenizationUseCase
	logger  *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	useCase tokenizationUseCase.TokenizationUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes attaches the tokenization routes to a router group.
func (h *TokenHandler) RegisterRoutes(group *gin.RouterGroup) {
	tokens := group.Group("/tokens")
	tokens.POST("", h.TokenizeHandler)
	tokens.POST("/detokenize", h.DetokenizeHandler)
	tokens.POST("/validate", h.ValidateHandler)
	tokens.POST("/revoke", h.RevokeHandler)
}

// TokenizeHandler exchanges a sensitive value for a token. Tokenization is
// deterministic: repeated requests for the same value return the same token.
// POST /v1/tokens - Returns 201 Created with the token.
func (h *TokenHandler) TokenizeHandler(c *gin.Context) {
	var req dto.TokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, err := h.useCase.Tokenize(c.Request.Context(), req.Value, req.ExpiresAt)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}

// DetokenizeHandler resolves a token back to its original value.
// POST /v1/tokens/detokenize - Returns 200 OK with the value, 404 for
// unknown tokens.
func (h *TokenHandler) DetokenizeHandler(c *gin.Context) {
	var req dto.DetokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := h.useCase.Detokenize(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DetokenizeResponse{Value: value})
}

// ValidateHandler reports whether a token exists and is neither expired nor
// revoked. Unknown tokens are invalid, not errors.
// POST /v1/tokens/validate - Returns 200 OK with the verdict.
func (h *TokenHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.useCase.Validate(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateTokenResponse{Valid: valid})
}

// RevokeHandler revokes a token so it can no longer be resolved.
// POST /v1/tokens/revoke - Returns 204 No Content.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.useCase.Revoke(c.Request.Context(), req.Token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
