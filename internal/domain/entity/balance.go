package entity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// MinimumValidatorStake is the balance an account needs to operate as a validator.
const MinimumValidatorStake int64 = 100000

// BalanceResponse is the success body of GET /api/wallet/balance/{address}.
// The balance may be a decimal or 0x-hex string.
type BalanceResponse struct {
	Address string                `json:"address,omitempty"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

// StakeCheckResult is produced and consumed within one stake validation.
type StakeCheckResult struct {
	Address    string
	Balance    *big.Int
	Required   *big.Int
	Sufficient bool
}

// ProbeResult is the outcome of a single liveness probe.
type ProbeResult struct {
	Endpoint  string
	Reachable bool
	Status    *NetworkStatus
	Err       error
}

// ConnectivityResult aggregates a set of liveness probes.
type ConnectivityResult struct {
	ReachableCount int
	TotalCount     int
	Percentage     float64
	Probes         []ProbeResult
}

// ConnectivityThreshold is the minimum percentage of reachable endpoints for success.
const ConnectivityThreshold = 50.0

// Passed reports whether enough endpoints were reachable.
func (r ConnectivityResult) Passed() bool {
	return r.Percentage >= ConnectivityThreshold
}
