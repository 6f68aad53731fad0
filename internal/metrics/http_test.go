package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("privacy")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "privacy"))
	router.GET("/v1/tokens/:token", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/tokens/tok_abc", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	metricsRec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(metricsRec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(metricsRec.Body)
	require.NoError(t, err)
	// Route pattern, not the raw path, is used as the label.
	assert.Contains(t, string(body), "/v1/tokens/:token")
	assert.NotContains(t, string(body), "tok_abc")
}
