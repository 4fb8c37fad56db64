package port

import (
	"context"
	"math/big"

	"contract_cli/internal/domain/entity"
)

// ContractAPIClient issues calls against one resolved blockchain API endpoint.
// Every operation sends exactly one request and returns a *entity.ChainError on failure.
type ContractAPIClient interface {
	// DeployContract submits contract code and returns the new contract address.
	DeployContract(ctx context.Context, req entity.DeployRequest) (string, error)

	// GetContract fetches the record of a deployed contract.
	GetContract(ctx context.Context, address string) (*entity.ContractRecord, error)

	// CallContract invokes a method on a deployed contract.
	CallContract(ctx context.Context, address string, req entity.CallRequest) (*entity.CallResult, error)

	// GetNetworkStatus probes the liveness path of the endpoint.
	GetNetworkStatus(ctx context.Context) (*entity.NetworkStatus, error)

	// GetBalance fetches the balance of an account.
	GetBalance(ctx context.Context, address string) (*big.Int, error)

	// Config returns the configuration the client was built with.
	Config() entity.ClientConfig
}

// ContractAPIClientProvider builds a fresh client per request. Clients are never cached or shared.
type ContractAPIClientProvider interface {
	GetClient(cfg entity.ClientConfig) (ContractAPIClient, error)
}

// NetworkProfileResolver maps network names to profiles.
type NetworkProfileResolver interface {
	// Resolve returns the profile for name, or an entity.ErrNetworkNotFound error.
	Resolve(name string) (entity.NetworkProfile, error)

	// Names returns the configured network names, sorted.
	Names() []string
}
