package http

import (
	"log/slog"
	"strings"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/privacy/internal/errors"
	"github.com/allisson/privacy/internal/httputil"
)

// ParseAPIKeys parses a semicolon-separated list of "name:hash" pairs into a
// lookup map. Argon2id encoded hashes contain commas, so ";" is the entry
// separator. Malformed entries are skipped.
func ParseAPIKeys(apiKeys string) map[string]string {
	keys := make(map[string]string)
	for _, pair := range strings.Split(apiKeys, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, hash, found := strings.Cut(pair, ":")
		if !found || name == "" || hash == "" {
			continue
		}
		keys[name] = hash
	}
	return keys
}

// APIKeyMiddleware authenticates requests via Bearer API keys.
//
// The credential format is "Bearer <name>:<secret>". The middleware looks up
// the Argon2id hash registered for the name and verifies the secret against
// it. On success the client name is stored in the request context for rate
// limiting and audit logging.
//
// Returns nil when no API keys are configured, which disables authentication.
func APIKeyMiddleware(apiKeys string, logger *slog.Logger) gin.HandlerFunc {
	keys := ParseAPIKeys(apiKeys)
	if len(keys) == 0 {
		logger.Warn("no API keys configured - authentication disabled")
		return nil
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// Only reachable with an invalid policy.
		panic(err)
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		name, secret, found := strings.Cut(credential, ":")
		if !found || name == "" || secret == "" {
			logger.Debug("authentication failed: malformed API key")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		hash, ok := keys[name]
		if !ok {
			logger.Debug("authentication failed: unknown client",
				slog.String("client_name", name))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		valid, err := hasher.Verify([]byte(secret), hash)
		if err != nil || !valid {
			logger.Debug("authentication failed: invalid secret",
				slog.String("client_name", name))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithClientName(c.Request.Context(), name)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful", slog.String("client_name", name))

		c.Next()
	}
}
