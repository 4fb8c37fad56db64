package client

import (
	"fmt"

	"go.uber.org/zap"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
)

// apiClientProvider implements port.ContractAPIClientProvider. It builds a new client
// for every request: one invocation, one endpoint, one client.
type apiClientProvider struct {
	zapLogger *zap.Logger
	logger    port.Logger
}

// NewAPIClientProvider creates a new client provider.
func NewAPIClientProvider(zapLogger *zap.Logger, log port.Logger) port.ContractAPIClientProvider {
	return &apiClientProvider{
		zapLogger: zapLogger,
		logger:    log,
	}
}

// GetClient builds a client bound to cfg.Endpoint.
func (p *apiClientProvider) GetClient(cfg entity.ClientConfig) (port.ContractAPIClient, error) {
	log := p.logger.With("endpoint", cfg.Endpoint)
	log.Debug("Creating API client", "chain_type", cfg.ChainType, "api_key_set", cfg.APIKey != "")
	c, err := NewAPIClient(cfg, p.zapLogger)
	if err != nil {
		log.Error("Failed to create API client", "error", err)
		return nil, fmt.Errorf("failed to create API client for %s: %w", cfg.Endpoint, err)
	}
	return c, nil
}
