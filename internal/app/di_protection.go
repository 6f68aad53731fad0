package app

import (
	"fmt"

	protectionHTTP "github.com/allisson/privacy/internal/protection/http"
	protectionUseCase "github.com/allisson/privacy/internal/protection/usecase"
)

// protectionComponents groups the PII protection dependencies held by the
// container.
type protectionComponents struct {
	useCase protectionUseCase.ProtectionUseCase
	handler *protectionHTTP.PIIHandler
}

// ProtectionUseCase returns the PII protection use case instance, wrapped
// with metrics instrumentation when metrics are enabled.
func (c *Container) ProtectionUseCase() (protectionUseCase.ProtectionUseCase, error) {
	c.protectionInit.Do(func() {
		useCase, err := c.initProtectionUseCase()
		if err != nil {
			c.initErrors["protectionUseCase"] = err
			return
		}
		c.protection.useCase = useCase
	})
	if storedErr, exists := c.initErrors["protectionUseCase"]; exists {
		return nil, storedErr
	}
	return c.protection.useCase, nil
}

// PIIHandler returns the HTTP handler for the PII protection operations.
func (c *Container) PIIHandler() (*protectionHTTP.PIIHandler, error) {
	if c.protection.handler != nil {
		return c.protection.handler, nil
	}

	useCase, err := c.ProtectionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get protection use case for pii handler: %w", err)
	}

	c.protection.handler = protectionHTTP.NewPIIHandler(useCase, c.Logger())
	return c.protection.handler, nil
}

// initProtectionUseCase creates the protection use case with all its
// dependencies.
func (c *Container) initProtectionUseCase() (protectionUseCase.ProtectionUseCase, error) {
	piiCatalog, err := c.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog for protection use case: %w", err)
	}

	encrypter, err := c.Encrypter()
	if err != nil {
		return nil, fmt.Errorf("failed to get encrypter for protection use case: %w", err)
	}

	keyMaterial, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for protection use case: %w", err)
	}

	useCase := protectionUseCase.NewProtectionUseCase(
		c.Anonymizer(),
		piiCatalog,
		encrypter,
		keyMaterial,
	)

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for protection use case: %w", err)
	}
	if business != nil {
		useCase = protectionUseCase.NewProtectionUseCaseWithMetrics(useCase, business)
	}

	return useCase, nil
}
