package service

import (
	"context"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
)

// DefaultProbeTimeout bounds each liveness probe independently.
const DefaultProbeTimeout = 5 * time.Second

// ValidatorService runs the stake and connectivity checks.
type ValidatorService struct {
	clients      port.ContractAPIClientProvider
	logger       port.Logger
	probeTimeout time.Duration
	apiKey       string
}

// ValidatorOption configures a ValidatorService.
type ValidatorOption func(*ValidatorService)

// WithProbeTimeout overrides DefaultProbeTimeout. Non-positive values are ignored.
func WithProbeTimeout(d time.Duration) ValidatorOption {
	return func(s *ValidatorService) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// WithProbeAPIKey sets the bearer token sent with every probe.
func WithProbeAPIKey(apiKey string) ValidatorOption {
	return func(s *ValidatorService) {
		s.apiKey = apiKey
	}
}

// NewValidatorService creates a new ValidatorService.
func NewValidatorService(clients port.ContractAPIClientProvider, logger port.Logger, opts ...ValidatorOption) *ValidatorService {
	s := &ValidatorService{
		clients:      clients,
		logger:       logger,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckStakeRequirement fetches the balance of address and compares it with MinimumValidatorStake.
// Client failures are returned as errors, never folded into an insufficient result.
func (s *ValidatorService) CheckStakeRequirement(ctx context.Context, client port.ContractAPIClient, address string) (entity.StakeCheckResult, error) {
	required := big.NewInt(entity.MinimumValidatorStake)

	balance, err := client.GetBalance(ctx, address)
	if err != nil {
		s.logger.Error("Stake check failed", "address", address, "error", err)
		return entity.StakeCheckResult{}, err
	}

	result := entity.StakeCheckResult{
		Address:    address,
		Balance:    balance,
		Required:   required,
		Sufficient: balance.Cmp(required) >= 0,
	}
	if result.Sufficient {
		s.logger.Info("Stake requirement met", "address", address, "balance", balance.String(), "required", required.String())
	} else {
		s.logger.Warn("Insufficient stake", "address", address, "balance", balance.String(), "required", required.String())
	}
	return result, nil
}

// ValidateNetworkConnectivity probes every endpoint concurrently and waits for all of them.
// A probe that fails or times out counts as unreachable and does not cancel the others.
// An empty endpoint list is rejected with an InvalidInput error.
func (s *ValidatorService) ValidateNetworkConnectivity(ctx context.Context, endpoints []string) (entity.ConnectivityResult, error) {
	if len(endpoints) == 0 {
		return entity.ConnectivityResult{}, entity.NewInvalidInput("connectivity check failed", "no endpoints to probe")
	}

	probes := make([]entity.ProbeResult, len(endpoints))

	var eg errgroup.Group
	for i, endpoint := range endpoints {
		eg.Go(func() error {
			probes[i] = s.probe(ctx, endpoint)
			return nil
		})
	}
	_ = eg.Wait() // probes never return errors

	result := entity.ConnectivityResult{
		TotalCount: len(endpoints),
		Probes:     probes,
	}
	for _, p := range probes {
		if p.Reachable {
			result.ReachableCount++
		}
	}
	result.Percentage = float64(result.ReachableCount) / float64(result.TotalCount) * 100

	s.logger.Info("Connectivity check complete",
		"reachable", result.ReachableCount,
		"total", result.TotalCount,
		"percentage", result.Percentage,
		"passed", result.Passed())
	return result, nil
}

func (s *ValidatorService) probe(ctx context.Context, endpoint string) entity.ProbeResult {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	result := entity.ProbeResult{Endpoint: endpoint}
	log := s.logger.With("endpoint", endpoint)

	client, err := s.clients.GetClient(entity.ClientConfig{Endpoint: endpoint, APIKey: s.apiKey})
	if err != nil {
		result.Err = err
		log.Warn("Endpoint probe skipped", "error", err)
		return result
	}

	status, err := client.GetNetworkStatus(probeCtx)
	if err != nil {
		result.Err = err
		log.Debug("Endpoint unreachable", "error", err)
		return result
	}

	result.Reachable = true
	result.Status = status
	log.Debug("Endpoint reachable", "status", status.Status, "block_height", status.BlockHeight)
	return result
}
