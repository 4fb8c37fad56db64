package restapi

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"contract_cli/internal/domain/entity"
)

// Store is the in-memory state of a devnet: deployed contracts, balances and a block counter.
type Store struct {
	mu        sync.RWMutex
	deployer  common.Address
	nonce     uint64
	height    uint64
	contracts map[common.Address]entity.ContractRecord
	balances  map[common.Address]*big.Int
}

// NewStore creates an empty store whose contracts are deployed from deployer.
func NewStore(deployer common.Address) *Store {
	return &Store{
		deployer:  deployer,
		contracts: make(map[common.Address]entity.ContractRecord),
		balances:  make(map[common.Address]*big.Int),
	}
}

// Deploy records a contract and returns its address, derived from the deployer and its nonce.
func (s *Store) Deploy(code string, chainType entity.ChainType) entity.ContractRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := crypto.CreateAddress(s.deployer, s.nonce)
	s.nonce++
	s.height++

	record := entity.ContractRecord{
		Address:    addr.Hex(),
		Code:       code,
		ChainType:  chainType,
		Deployer:   s.deployer.Hex(),
		DeployedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.contracts[addr] = record
	return record
}

// Contract looks up a deployed contract by address.
func (s *Store) Contract(address string) (entity.ContractRecord, bool) {
	if !common.IsHexAddress(address) {
		return entity.ContractRecord{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.contracts[common.HexToAddress(address)]
	return record, ok
}

// Call executes method against a deployed contract.
// "ping" answers "pong"; any other method echoes its first argument, or produces a transaction hash
// when there is none.
func (s *Store) Call(address string, req entity.CallRequest) (entity.CallResult, bool) {
	if _, ok := s.Contract(address); !ok {
		return entity.CallResult{}, false
	}
	if strings.EqualFold(req.Method, "ping") {
		pong := entity.StringValue("pong")
		return entity.CallResult{Result: &pong}, true
	}
	if len(req.Args) > 0 {
		first := req.Args[0]
		return entity.CallResult{Result: &first}, true
	}

	s.mu.Lock()
	s.height++
	height := s.height
	s.mu.Unlock()

	hash := crypto.Keccak256Hash([]byte(fmt.Sprintf("%s:%s:%d", common.HexToAddress(address).Hex(), req.Method, height)))
	return entity.CallResult{TxHash: hash.Hex()}, true
}

// Fund adds amount to the balance of address.
func (s *Store) Fund(address string, amount *big.Int) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address %q", address)
	}
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid amount for %s", address)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	addr := common.HexToAddress(address)
	current, ok := s.balances[addr]
	if !ok {
		current = new(big.Int)
	}
	s.balances[addr] = new(big.Int).Add(current, amount)
	return nil
}

// Balance returns the balance of address; unknown accounts hold zero.
func (s *Store) Balance(address string) (*big.Int, bool) {
	if !common.IsHexAddress(address) {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.balances[common.HexToAddress(address)]; ok {
		return new(big.Int).Set(b), true
	}
	return new(big.Int), true
}

// Height returns the current block height.
func (s *Store) Height() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}
