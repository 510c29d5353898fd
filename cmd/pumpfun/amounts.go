// ====================================
// File: cmd/pumpfun/amounts.go
// ====================================
package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the precision of every pump.fun mint.
const TokenDecimals = 6

// parseSol converts a SOL amount such as "0.25" into lamports.
func parseSol(s string) (uint64, error) {
	return parseUnits(s, 9)
}

// parseTokens converts a UI token amount such as "1000.5" into raw units.
func parseTokens(s string) (uint64, error) {
	return parseUnits(s, TokenDecimals)
}

func parseUnits(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: must not be negative", s)
	}

	raw := d.Shift(decimals)
	if !raw.Equal(raw.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than %d decimal places", s, decimals)
	}
	if raw.GreaterThan(decimal.NewFromUint64(^uint64(0))) {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}
	return raw.BigInt().Uint64(), nil
}

// formatUnits renders raw units with the given precision.
func formatUnits(raw uint64, decimals int32) string {
	return decimal.NewFromUint64(raw).Shift(-decimals).String()
}
