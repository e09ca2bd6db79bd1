package replay

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddress converts a hex string into a common.Address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}

// ParseAmount converts a decimal string into a non-negative big.Int.
func ParseAmount(input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("amount is required")
	}
	value, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", input)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("amount must be non-negative: %s", input)
	}
	return value, nil
}

// ParseOptionalAmount is ParseAmount but returns nil for an empty string,
// meaning no constraint.
func ParseOptionalAmount(input string) (*big.Int, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	return ParseAmount(input)
}
