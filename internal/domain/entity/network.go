package entity

import (
	"fmt"
	"strings"
	"time"
)

// ChainType is the visibility of a network: public or private.
type ChainType string

const (
	ChainTypePublic  ChainType = "public"
	ChainTypePrivate ChainType = "private"
)

// ParseChainType normalizes a chain type string. An empty value defaults to public.
func ParseChainType(s string) (ChainType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ChainTypePublic):
		return ChainTypePublic, nil
	case string(ChainTypePrivate):
		return ChainTypePrivate, nil
	default:
		return "", fmt.Errorf("unknown chain type %q (expected %q or %q)", s, ChainTypePublic, ChainTypePrivate)
	}
}

// NetworkProfile is a resolved, named bundle of endpoint URL and chain visibility.
// It is immutable once resolved and passed around by value.
type NetworkProfile struct {
	Name      string    `json:"name" yaml:"name"`
	Endpoint  string    `json:"endpoint" yaml:"endpoint"`
	ChainType ChainType `json:"chainType" yaml:"chainType"`
}

// ClientConfig holds everything needed to build one API client bound to one endpoint.
type ClientConfig struct {
	Endpoint  string
	ChainType ChainType
	APIKey    string
	// RequestTimeout bounds each request when the caller's context has no deadline.
	// Zero means no explicit timeout.
	RequestTimeout time.Duration
}

// ClientConfigFromProfile builds a ClientConfig for the given profile.
func ClientConfigFromProfile(p NetworkProfile, apiKey string, requestTimeout time.Duration) ClientConfig {
	return ClientConfig{
		Endpoint:       p.Endpoint,
		ChainType:      p.ChainType,
		APIKey:         apiKey,
		RequestTimeout: requestTimeout,
	}
}

// NetworkStatus is the liveness record returned by the health endpoint.
type NetworkStatus struct {
	Status      string    `json:"status"`
	Network     string    `json:"network,omitempty"`
	ChainType   ChainType `json:"chainType,omitempty"`
	BlockHeight uint64    `json:"blockHeight"`
}
