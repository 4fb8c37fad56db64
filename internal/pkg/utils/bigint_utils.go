package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
)

// ParseAmount parses a non-negative decimal or 0x-hex integer amount.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	amount, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount %q must not be negative", s)
	}
	return amount, nil
}

// FormatAmount renders an integer amount with thousands separators.
// Example: 1234567 => "1,234,567"
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	digits := new(big.Int).Abs(amount).String()
	var b strings.Builder
	if amount.Sign() < 0 {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
