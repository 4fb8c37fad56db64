package networkdefinition

import (
	"fmt"
	"sort"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
	"contract_cli/internal/infrastructure/configloader"
)

// DefaultNetwork is used when a command is given no --network flag.
const DefaultNetwork = "local"

// Built-in profiles written into new projects by init. Resolution never consults them.
var ( //nolint:gochecknoglobals // Global for definitions
	Local = entity.NetworkProfile{
		Name:      "local",
		Endpoint:  "http://127.0.0.1:7545",
		ChainType: entity.ChainTypePrivate,
	}
	Testnet = entity.NetworkProfile{
		Name:      "testnet",
		Endpoint:  "https://testnet-api.example-chain.io",
		ChainType: entity.ChainTypePublic,
	}
	Mainnet = entity.NetworkProfile{
		Name:      "mainnet",
		Endpoint:  "https://api.example-chain.io",
		ChainType: entity.ChainTypePublic,
	}
)

// BuiltinProfiles returns a fresh copy of the built-in profiles keyed by name.
func BuiltinProfiles() map[string]entity.NetworkProfile {
	return map[string]entity.NetworkProfile{
		Local.Name:   Local,
		Testnet.Name: Testnet,
		Mainnet.Name: Mainnet,
	}
}

// ProfileResolver implements port.NetworkProfileResolver over a loaded project configuration.
type ProfileResolver struct {
	logger   port.Logger
	profiles map[string]entity.NetworkProfile
}

// NewProfileResolver snapshots the networks of cfg. A nil cfg resolves nothing.
func NewProfileResolver(cfg *configloader.ProjectConfig, log port.Logger) *ProfileResolver {
	r := &ProfileResolver{
		logger:   log,
		profiles: make(map[string]entity.NetworkProfile),
	}
	if cfg == nil {
		return r
	}
	for name, n := range cfg.Networks {
		r.profiles[name] = entity.NetworkProfile{
			Name:      name,
			Endpoint:  n.Endpoint,
			ChainType: n.ChainType,
		}
	}
	if len(r.profiles) == 0 {
		r.logger.Warn("No networks configured. Every network lookup will fail.")
	}
	return r
}

// Resolve returns the profile for name or a NetworkNotFound error.
func (r *ProfileResolver) Resolve(name string) (entity.NetworkProfile, error) {
	if r == nil {
		return entity.NetworkProfile{}, notFound(name)
	}
	p, ok := r.profiles[name]
	if !ok {
		r.logger.Debug("Network lookup failed", "network", name, "known", len(r.profiles))
		return entity.NetworkProfile{}, notFound(name)
	}
	return p, nil
}

// Names returns the configured network names, sorted.
func (r *ProfileResolver) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Endpoints returns the endpoint of every configured network in name order.
func (r *ProfileResolver) Endpoints() []string {
	names := r.Names()
	endpoints := make([]string, 0, len(names))
	for _, name := range names {
		endpoints = append(endpoints, r.profiles[name].Endpoint)
	}
	return endpoints
}

func notFound(name string) error {
	return &entity.ChainError{
		Kind:    entity.KindNetworkNotFound,
		Op:      "network not found",
		Message: fmt.Sprintf("%q is not defined in the networks section of the configuration", name),
	}
}
