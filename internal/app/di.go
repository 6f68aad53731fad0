// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacy/internal/anonymization"
	"github.com/allisson/privacy/internal/catalog"
	"github.com/allisson/privacy/internal/config"
	cryptoDomain "github.com/allisson/privacy/internal/crypto/domain"
	cryptoService "github.com/allisson/privacy/internal/crypto/service"
	"github.com/allisson/privacy/internal/database"
	"github.com/allisson/privacy/internal/http"
	"github.com/allisson/privacy/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger      *slog.Logger
	db          *sql.DB
	txManager   database.TxManager
	keyMaterial string
	piiCatalog  *catalog.Catalog
	anonymizer  *anonymization.Anonymizer
	encrypter   cryptoService.Encrypter

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Domain components (see di_tokenization.go and di_protection.go)
	tokenization tokenizationComponents
	protection   protectionComponents

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	keyMaterialInit     sync.Once
	catalogInit         sync.Once
	anonymizerInit      sync.Once
	encrypterInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	tokenRepoInit       sync.Once
	tokenUseCaseInit    sync.Once
	protectionInit      sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// KeyMaterial returns the resolved service passphrase for envelope
// encryption, unwrapping KMS-wrapped material when configured.
func (c *Container) KeyMaterial() (string, error) {
	c.keyMaterialInit.Do(func() {
		material, err := c.initKeyMaterial()
		if err != nil {
			c.initErrors["keyMaterial"] = err
			return
		}
		c.keyMaterial = material
	})
	if storedErr, exists := c.initErrors["keyMaterial"]; exists {
		return "", storedErr
	}
	return c.keyMaterial, nil
}

// Catalog returns the PII field catalog. An empty catalog path yields an
// empty catalog, which disables export and deletion policies.
func (c *Container) Catalog() (*catalog.Catalog, error) {
	c.catalogInit.Do(func() {
		piiCatalog, err := catalog.Load(c.config.PIICatalogPath)
		if err != nil {
			c.initErrors["catalog"] = fmt.Errorf("failed to load PII catalog: %w", err)
			return
		}
		c.piiCatalog = piiCatalog
	})
	if storedErr, exists := c.initErrors["catalog"]; exists {
		return nil, storedErr
	}
	return c.piiCatalog, nil
}

// Anonymizer returns the record anonymizer.
func (c *Container) Anonymizer() *anonymization.Anonymizer {
	c.anonymizerInit.Do(func() {
		c.anonymizer = anonymization.New(c.config.AnonymizationSalt)
	})
	return c.anonymizer
}

// Encrypter returns the envelope cipher configured with the selected AEAD
// algorithm and PBKDF2 iteration count.
func (c *Container) Encrypter() (cryptoService.Encrypter, error) {
	c.encrypterInit.Do(func() {
		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
		if err != nil {
			c.initErrors["encrypter"] = fmt.Errorf(
				"invalid encryption algorithm %q: %w", c.config.EncryptionAlgorithm, err)
			return
		}
		c.encrypter = cryptoService.NewEnvelopeCipher(
			cryptoService.NewAEADManager(),
			algorithm,
			c.config.PBKDF2Iterations,
		)
	})
	if storedErr, exists := c.initErrors["encrypter"]; exists {
		return nil, storedErr
	}
	return c.encrypter, nil
}

// MetricsProvider returns the otel/prometheus metrics provider.
// Returns nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// Returns nil when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			return
		}
		business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = business
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// Returns nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initKeyMaterial resolves the service passphrase, preferring KMS-wrapped
// material when configured.
func (c *Container) initKeyMaterial() (string, error) {
	var wrapped []byte
	if c.config.EncryptionKeyWrapped != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.config.EncryptionKeyWrapped)
		if err != nil {
			return "", fmt.Errorf("failed to decode wrapped key material: %w", err)
		}
		wrapped = decoded
	}

	resolver := cryptoService.NewKeyResolver()
	material, err := resolver.Resolve(
		context.Background(),
		c.config.EncryptionKeyURI,
		wrapped,
		c.config.EncryptionKey,
	)
	if err != nil {
		return "", fmt.Errorf("failed to resolve key material: %w", err)
	}
	return material, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	piiHandler, err := c.PIIHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get pii handler for http server: %w", err)
	}

	var globalMiddlewares []gin.HandlerFunc
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		globalMiddlewares = append(globalMiddlewares,
			metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace))
	}

	apiMiddlewares := []gin.HandlerFunc{
		http.APIKeyMiddleware(c.config.APIKeys, logger),
	}
	if c.config.RateLimitEnabled {
		apiMiddlewares = append(apiMiddlewares, http.RateLimitMiddleware(
			c.config.RateLimitRequestsPerSec,
			c.config.RateLimitBurst,
			logger,
		))
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(http.RouterConfig{
		CORSEnabled:       c.config.CORSEnabled,
		CORSAllowOrigins:  c.config.CORSAllowOrigins,
		GlobalMiddlewares: globalMiddlewares,
		APIMiddlewares:    apiMiddlewares,
		Registrars: []http.RouteRegistrar{
			piiHandler,
			tokenHandler,
		},
	})

	return server, nil
}
