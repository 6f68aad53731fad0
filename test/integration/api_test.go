// Package integration provides end-to-end tests for the privacy API. The
// router is assembled the same way the DI container does, with the in-memory
// token repository standing in for the database.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/catalog"
	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"
	cryptoService "github.com/allisson/privacy/internal/crypto/service"
	httpServer "github.com/allisson/privacy/internal/http"
	"github.com/allisson/privacy/internal/masking"
	protectionHTTP "github.com/allisson/privacy/internal/protection/http"
	protectionDTO "github.com/allisson/privacy/internal/protection/http/dto"
	protectionUseCase "github.com/allisson/privacy/internal/protection/usecase"
	tokenizationHTTP "github.com/allisson/privacy/internal/tokenization/http"
	tokenizationDTO "github.com/allisson/privacy/internal/tokenization/http/dto"
	tokenizationRepository "github.com/allisson/privacy/internal/tokenization/repository"
	tokenizationService "github.com/allisson/privacy/internal/tokenization/service"
	tokenizationUseCase "github.com/allisson/privacy/internal/tokenization/usecase"
)

const (
	testClientName   = "integration"
	testClientSecret = "integration-secret"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// noopTxManager runs the function directly; the in-memory repository has no
// transactional semantics.
type noopTxManager struct{}

func (noopTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// integrationTestContext holds the test server and credentials.
type integrationTestContext struct {
	server *httptest.Server
	apiKey string
}

// setupIntegrationTest assembles the full router with real use cases behind
// it: envelope encryption, catalog policies, and in-memory tokenization.
func setupIntegrationTest(t *testing.T) *integrationTestContext {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	require.NoError(t, err)
	hashedSecret, err := hasher.Hash([]byte(testClientSecret))
	require.NoError(t, err)

	piiCatalog, err := catalog.New([]catalog.Field{
		{
			TableName:   "users",
			ColumnName:  "email",
			Category:    catalog.CategoryIdentifier,
			Sensitivity: catalog.SensitivityStandard,
			MaskingRule: masking.RuleEmail,
		},
		{
			TableName:   "users",
			ColumnName:  "ssn",
			Category:    catalog.CategoryIdentifier,
			Sensitivity: catalog.SensitivityHighlySensitive,
			MaskingRule: masking.RuleSSN,
		},
		{
			TableName:   "users",
			ColumnName:  "balance",
			Category:    catalog.CategoryFinancial,
			Sensitivity: catalog.SensitivitySensitive,
		},
	})
	require.NoError(t, err)

	encrypter := cryptoService.NewEnvelopeCipher(
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
		cryptoService.MinPBKDF2Iterations,
	)
	anonymizer := anonymization.New("integration-salt")

	piiUseCase := protectionUseCase.NewProtectionUseCase(
		anonymizer,
		piiCatalog,
		encrypter,
		"integration-passphrase",
	)
	piiHandler := protectionHTTP.NewPIIHandler(piiUseCase, logger)

	tokenUseCase := tokenizationUseCase.NewTokenizationUseCase(
		noopTxManager{},
		tokenizationRepository.NewMemoryTokenRepository(),
		tokenizationUseCase.NewSaltedHashService("integration-salt"),
		encrypter,
		"integration-passphrase",
		tokenizationService.NewRandomTokenGenerator(),
	)
	tokenHandler := tokenizationHTTP.NewTokenHandler(tokenUseCase, logger)

	server := httpServer.NewServer(nil, "localhost", 0, logger)
	server.SetupRouter(httpServer.RouterConfig{
		APIMiddlewares: []gin.HandlerFunc{
			httpServer.APIKeyMiddleware(testClientName+":"+hashedSecret, logger),
			httpServer.RateLimitMiddleware(100, 200, logger),
		},
		Registrars: []httpServer.RouteRegistrar{piiHandler, tokenHandler},
	})

	ts := httptest.NewServer(server.GetHandler())
	t.Cleanup(ts.Close)

	return &integrationTestContext{
		server: ts,
		apiKey: testClientName + ":" + testClientSecret,
	}
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.apiKey)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func TestHealthEndpoints(t *testing.T) {
	ctx := setupIntegrationTest(t)

	resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")

	// Readiness fails without a database.
	resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "not_ready")
}

func TestAuthentication(t *testing.T) {
	ctx := setupIntegrationTest(t)

	t.Run("MissingCredentials", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/pii/mask",
			protectionDTO.MaskRequest{Value: "123-45-6789"}, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ctx.server.URL+"/v1/pii/mask",
			bytes.NewReader([]byte(`{"value":"123-45-6789"}`)))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+testClientName+":wrong-secret")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestPIIEndpoints(t *testing.T) {
	ctx := setupIntegrationTest(t)

	t.Run("Mask", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/mask",
			protectionDTO.MaskRequest{Value: "123-45-6789", Rule: "ssn"}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response protectionDTO.MaskResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Equal(t, "***-**-6789", response.Masked)
	})

	t.Run("Hash", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/hash",
			protectionDTO.HashRequest{Value: "user@example.com"}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response protectionDTO.HashResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Len(t, response.Hash, 64)
	})

	t.Run("EncryptDecryptRoundTrip", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/encrypt",
			protectionDTO.EncryptRequest{Plaintext: "sensitive data"}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var encryptResponse protectionDTO.EncryptResponse
		require.NoError(t, json.Unmarshal(body, &encryptResponse))
		require.NotEmpty(t, encryptResponse.Envelope)

		resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/pii/decrypt",
			protectionDTO.DecryptRequest{Envelope: encryptResponse.Envelope}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decryptResponse protectionDTO.DecryptResponse
		require.NoError(t, json.Unmarshal(body, &decryptResponse))
		assert.Equal(t, "sensitive data", decryptResponse.Plaintext)
	})

	t.Run("DetectAndRedact", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/detect",
			protectionDTO.DetectRequest{Text: "Contact user@example.com today"}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var detectResponse protectionDTO.DetectResponse
		require.NoError(t, json.Unmarshal(body, &detectResponse))
		require.Len(t, detectResponse.Findings, 1)
		assert.Equal(t, "email", detectResponse.Findings[0].Type)

		resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/pii/redact",
			protectionDTO.RedactRequest{Text: "Contact user@example.com today"}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var redactResponse protectionDTO.RedactResponse
		require.NoError(t, json.Unmarshal(body, &redactResponse))
		assert.Equal(t, "Contact [REDACTED_EMAIL] today", redactResponse.Redacted)
	})

	t.Run("AnonymousIDIsDeterministic", func(t *testing.T) {
		first, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/anonymous-id",
			protectionDTO.AnonymousIDRequest{UserID: "user-42"}, true)
		require.Equal(t, http.StatusOK, first.StatusCode)

		var firstResponse protectionDTO.AnonymousIDResponse
		require.NoError(t, json.Unmarshal(body, &firstResponse))
		assert.Contains(t, firstResponse.AnonymousID, "anon_")

		second, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/anonymous-id",
			protectionDTO.AnonymousIDRequest{UserID: "user-42"}, true)
		require.Equal(t, http.StatusOK, second.StatusCode)

		var secondResponse protectionDTO.AnonymousIDResponse
		require.NoError(t, json.Unmarshal(body, &secondResponse))
		assert.Equal(t, firstResponse.AnonymousID, secondResponse.AnonymousID)
	})

	t.Run("ExportMasksBySensitivity", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/export",
			protectionDTO.ExportRequest{
				Table: "users",
				Record: map[string]any{
					"email": "user@example.com",
					"ssn":   "123-45-6789",
				},
			}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response protectionDTO.RecordResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Equal(t, "user@example.com", response.Record["email"])
		assert.Equal(t, "***-**-6789", response.Record["ssn"])
	})

	t.Run("ExportUnknownTable", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/pii/export",
			protectionDTO.ExportRequest{
				Table:  "unknown",
				Record: map[string]any{"email": "user@example.com"},
			}, true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Deletion", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/pii/deletion",
			protectionDTO.DeletionRequest{
				Table:  "users",
				UserID: "user-42",
				Record: map[string]any{
					"ssn":     "123-45-6789",
					"balance": "1234.56",
				},
			}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response protectionDTO.RecordResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Contains(t, response.Record["ssn"], "deleted:anon_")
		assert.Equal(t, "[DELETED]", response.Record["balance"])
	})
}

func TestTokenLifecycle(t *testing.T) {
	ctx := setupIntegrationTest(t)

	// Tokenize
	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/tokens",
		tokenizationDTO.TokenizeRequest{Value: "4111-1111-1111-1111"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tokenResponse tokenizationDTO.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tokenResponse))
	require.NotEmpty(t, tokenResponse.Token)
	assert.NotContains(t, string(body), "4111-1111-1111-1111")

	// Tokenizing the same value returns the same token
	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/tokens",
		tokenizationDTO.TokenizeRequest{Value: "4111-1111-1111-1111"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var secondResponse tokenizationDTO.TokenResponse
	require.NoError(t, json.Unmarshal(body, &secondResponse))
	assert.Equal(t, tokenResponse.Token, secondResponse.Token)

	// Detokenize
	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/detokenize",
		tokenizationDTO.DetokenizeRequest{Token: tokenResponse.Token}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detokenizeResponse tokenizationDTO.DetokenizeResponse
	require.NoError(t, json.Unmarshal(body, &detokenizeResponse))
	assert.Equal(t, "4111-1111-1111-1111", detokenizeResponse.Value)

	// Validate
	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/validate",
		tokenizationDTO.ValidateTokenRequest{Token: tokenResponse.Token}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var validateResponse tokenizationDTO.ValidateTokenResponse
	require.NoError(t, json.Unmarshal(body, &validateResponse))
	assert.True(t, validateResponse.Valid)

	// Revoke
	resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/revoke",
		tokenizationDTO.RevokeTokenRequest{Token: tokenResponse.Token}, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// A revoked token no longer validates or detokenizes
	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/validate",
		tokenizationDTO.ValidateTokenRequest{Token: tokenResponse.Token}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &validateResponse))
	assert.False(t, validateResponse.Valid)

	resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/detokenize",
		tokenizationDTO.DetokenizeRequest{Token: tokenResponse.Token}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown tokens are not found
	resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/tokens/detokenize",
		tokenizationDTO.DetokenizeRequest{Token: "tok_ffffffffffffffffffffffffffffffff"}, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
