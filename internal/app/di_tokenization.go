package app

import (
	"fmt"

	tokenizationHTTP "github.com/allisson/privacy/internal/tokenization/http"
	tokenizationRepository "github.com/allisson/privacy/internal/tokenization/repository"
	tokenizationService "github.com/allisson/privacy/internal/tokenization/service"
	tokenizationUseCase "github.com/allisson/privacy/internal/tokenization/usecase"
)

// tokenizationComponents groups the tokenization dependencies held by the
// container.
type tokenizationComponents struct {
	repo    tokenizationUseCase.TokenRepository
	useCase tokenizationUseCase.TokenizationUseCase
	handler *tokenizationHTTP.TokenHandler
}

// TokenRepository returns the token repository for the configured database
// driver.
func (c *Container) TokenRepository() (tokenizationUseCase.TokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		repo, err := c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
			return
		}
		c.tokenization.repo = repo
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenization.repo, nil
}

// TokenizationUseCase returns the tokenization use case instance, wrapped
// with metrics instrumentation when metrics are enabled.
func (c *Container) TokenizationUseCase() (tokenizationUseCase.TokenizationUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		useCase, err := c.initTokenizationUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}
		c.tokenization.useCase = useCase
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenization.useCase, nil
}

// TokenHandler returns the HTTP handler for tokenization operations.
func (c *Container) TokenHandler() (*tokenizationHTTP.TokenHandler, error) {
	if c.tokenization.handler != nil {
		return c.tokenization.handler, nil
	}

	useCase, err := c.TokenizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenization use case for token handler: %w", err)
	}

	c.tokenization.handler = tokenizationHTTP.NewTokenHandler(useCase, c.Logger())
	return c.tokenization.handler, nil
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (tokenizationUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return tokenizationRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return tokenizationRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenizationUseCase creates the tokenization use case with all its
// dependencies.
func (c *Container) initTokenizationUseCase() (tokenizationUseCase.TokenizationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for tokenization use case: %w", err)
	}

	repo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for tokenization use case: %w", err)
	}

	encrypter, err := c.Encrypter()
	if err != nil {
		return nil, fmt.Errorf("failed to get encrypter for tokenization use case: %w", err)
	}

	keyMaterial, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for tokenization use case: %w", err)
	}

	useCase := tokenizationUseCase.NewTokenizationUseCase(
		txManager,
		repo,
		tokenizationUseCase.NewSaltedHashService(c.config.AnonymizationSalt),
		encrypter,
		keyMaterial,
		tokenizationService.NewRandomTokenGenerator(),
	)

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for tokenization use case: %w", err)
	}
	if business != nil {
		useCase = tokenizationUseCase.NewTokenizationUseCaseWithMetrics(useCase, business)
	}

	return useCase, nil
}
