// internal/programs/computebudget/computebudget.go
package computebudget

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/shopspring/decimal"
)

// Predefined compute unit profiles
const (
	DefaultUnits  uint32 = 200_000
	StandardUnits uint32 = 400_000
	CreateUnits   uint32 = 300_000
)

var (
	lamportsPerSol      = decimal.New(1, 9)
	microLamportsPerLam = decimal.New(1, 6)
)

// Config holds the compute budget of a transaction.
type Config struct {
	Units uint32
	// PriorityFeeSol is the total priority fee in SOL spread over Units.
	PriorityFeeSol decimal.Decimal
}

// NewDefaultConfig creates the default configuration
func NewDefaultConfig() Config {
	return Config{
		Units:          DefaultUnits,
		PriorityFeeSol: decimal.Zero,
	}
}

// SolToLamports converts a SOL amount to lamports, truncating fractions of a lamport.
func SolToLamports(sol decimal.Decimal) uint64 {
	if sol.IsNegative() {
		return 0
	}
	return sol.Mul(lamportsPerSol).BigInt().Uint64()
}

// LamportsToSol converts lamports to SOL.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Div(lamportsPerSol)
}

// UnitPrice returns the per-unit price in micro-lamports that makes the
// whole budget of units cost feeSol.
func UnitPrice(feeSol decimal.Decimal, units uint32) uint64 {
	if units == 0 || !feeSol.IsPositive() {
		return 0
	}
	return feeSol.
		Mul(lamportsPerSol).
		Mul(microLamportsPerLam).
		Div(decimal.NewFromInt(int64(units))).
		Floor().
		BigInt().
		Uint64()
}

// BuildInstructions creates the compute unit limit and, when a priority fee
// is set, the compute unit price instructions.
func BuildInstructions(config Config) ([]solana.Instruction, error) {
	if config.Units == 0 {
		config.Units = DefaultUnits
	}

	limit, err := computebudget.NewSetComputeUnitLimitInstruction(config.Units).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build compute unit limit instruction: %w", err)
	}
	instructions := []solana.Instruction{limit}

	if price := UnitPrice(config.PriorityFeeSol, config.Units); price > 0 {
		priceIx, err := computebudget.NewSetComputeUnitPriceInstruction(price).ValidateAndBuild()
		if err != nil {
			return nil, fmt.Errorf("failed to build compute unit price instruction: %w", err)
		}
		instructions = append(instructions, priceIx)
	}

	return instructions, nil
}
