package entity

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ValueKind tags the type of a Value.
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueInt     ValueKind = "int"
	ValueBool    ValueKind = "bool"
	ValueAddress ValueKind = "address"
	ValueBytes   ValueKind = "bytes"
)

// Value is a typed contract argument or result. The value is always carried as a string
// on the wire; Kind says how to interpret it.
type Value struct {
	Kind  ValueKind `json:"type"`
	Value string    `json:"value"`
}

// StringValue, IntValue and friends build Values without going through ParseValue.
func StringValue(s string) Value { return Value{Kind: ValueString, Value: s} }

func IntValue(i int64) Value { return Value{Kind: ValueInt, Value: big.NewInt(i).String()} }

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: ValueBool, Value: "true"}
	}
	return Value{Kind: ValueBool, Value: "false"}
}

// ParseValue parses the CLI form "type:value". Input without a known type prefix is a string.
func ParseValue(s string) (Value, error) {
	kind, raw, found := strings.Cut(s, ":")
	if !found {
		return StringValue(s), nil
	}
	v := Value{Kind: ValueKind(strings.ToLower(kind)), Value: raw}
	switch v.Kind {
	case ValueString, ValueInt, ValueBool, ValueAddress, ValueBytes:
	default:
		// "http://..." and similar are plain strings.
		return StringValue(s), nil
	}
	if err := v.Validate(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Validate checks that Value is well-formed for its kind.
func (v Value) Validate() error {
	switch v.Kind {
	case ValueString:
		return nil
	case ValueInt:
		if _, ok := new(big.Int).SetString(v.Value, 10); !ok {
			return fmt.Errorf("invalid int value %q", v.Value)
		}
	case ValueBool:
		if v.Value != "true" && v.Value != "false" {
			return fmt.Errorf("invalid bool value %q", v.Value)
		}
	case ValueAddress:
		if !common.IsHexAddress(v.Value) {
			return fmt.Errorf("invalid address value %q", v.Value)
		}
	case ValueBytes:
		if _, err := hexutil.Decode(v.Value); err != nil {
			return fmt.Errorf("invalid bytes value %q: %w", v.Value, err)
		}
	default:
		return fmt.Errorf("unknown value type %q", v.Kind)
	}
	return nil
}

func (v Value) String() string {
	return fmt.Sprintf("%s:%s", v.Kind, v.Value)
}

// DeployRequest is the body of POST /api/contracts/deploy.
type DeployRequest struct {
	Code            string    `json:"code"`
	ConstructorArgs []Value   `json:"constructorArgs"`
	ChainType       ChainType `json:"chainType,omitempty"`
}

// Validate rejects requests that must never reach the network.
func (r DeployRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return NewInvalidInput("deployment failed", "contract code is empty")
	}
	for i, arg := range r.ConstructorArgs {
		if err := arg.Validate(); err != nil {
			return NewInvalidInput("deployment failed", "constructor arg %d: %v", i, err)
		}
	}
	return nil
}

// DeployResponse is the success body of a deploy.
type DeployResponse struct {
	Address string `json:"address"`
}

// CallRequest is the body of POST /api/contracts/{address}/call.
type CallRequest struct {
	Method string  `json:"method"`
	Args   []Value `json:"args"`
}

// Validate rejects requests that must never reach the network.
func (r CallRequest) Validate() error {
	if strings.TrimSpace(r.Method) == "" {
		return NewInvalidInput("contract call failed", "method is empty")
	}
	for i, arg := range r.Args {
		if err := arg.Validate(); err != nil {
			return NewInvalidInput("contract call failed", "arg %d: %v", i, err)
		}
	}
	return nil
}

// CallResult is the success body of a contract call.
type CallResult struct {
	Result *Value `json:"result,omitempty"`
	TxHash string `json:"txHash,omitempty"`
}

// ContractRecord describes a deployed contract as reported by the remote API.
type ContractRecord struct {
	Address    string    `json:"address"`
	Code       string    `json:"code,omitempty"`
	ChainType  ChainType `json:"chainType,omitempty"`
	Deployer   string    `json:"deployer,omitempty"`
	DeployedAt string    `json:"deployedAt,omitempty"`
}

// RemoteError is the error body returned by the remote API.
type RemoteError struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
