package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
)

// Connector resolves a network name and builds a fresh client for it.
type Connector struct {
	resolver       port.NetworkProfileResolver
	clients        port.ContractAPIClientProvider
	apiKey         string
	requestTimeout time.Duration
}

// NewConnector creates a new Connector.
func NewConnector(resolver port.NetworkProfileResolver, clients port.ContractAPIClientProvider, apiKey string, requestTimeout time.Duration) *Connector {
	return &Connector{
		resolver:       resolver,
		clients:        clients,
		apiKey:         apiKey,
		requestTimeout: requestTimeout,
	}
}

// Connect resolves network and returns its profile with a client bound to it.
func (c *Connector) Connect(network string) (entity.NetworkProfile, port.ContractAPIClient, error) {
	profile, err := c.resolver.Resolve(network)
	if err != nil {
		return entity.NetworkProfile{}, nil, err
	}
	client, err := c.clients.GetClient(entity.ClientConfigFromProfile(profile, c.apiKey, c.requestTimeout))
	if err != nil {
		return entity.NetworkProfile{}, nil, err
	}
	return profile, client, nil
}

// DeployedContract pairs a source file with the address it was deployed to.
type DeployedContract struct {
	Source  string
	Address string
}

// DeployService deploys contract sources through one client.
type DeployService struct {
	logger port.Logger
}

// NewDeployService creates a new DeployService.
func NewDeployService(logger port.Logger) *DeployService {
	return &DeployService{logger: logger}
}

// DeploySources deploys each source in order with the same constructor args.
// It stops at the first failure and returns what was deployed before it.
func (s *DeployService) DeploySources(ctx context.Context, client port.ContractAPIClient, sources []string, args []entity.Value) ([]DeployedContract, error) {
	if len(sources) == 0 {
		return nil, entity.NewInvalidInput("deployment failed", "no contract sources to deploy")
	}

	deployed := make([]DeployedContract, 0, len(sources))
	for _, path := range sources {
		code, err := os.ReadFile(path)
		if err != nil {
			return deployed, fmt.Errorf("failed to read contract %s: %w", path, err)
		}

		address, err := client.DeployContract(ctx, entity.DeployRequest{
			Code:            string(code),
			ConstructorArgs: args,
			ChainType:       client.Config().ChainType,
		})
		if err != nil {
			s.logger.Error("Deployment failed", "source", path, "error", err)
			return deployed, fmt.Errorf("%s: %w", path, err)
		}

		s.logger.Info("Deployed contract", "source", path, "address", address)
		deployed = append(deployed, DeployedContract{Source: path, Address: address})
	}
	return deployed, nil
}
