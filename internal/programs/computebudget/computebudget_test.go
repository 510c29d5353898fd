package computebudget

import (
	"encoding/binary"
	"testing"

	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolToLamports(t *testing.T) {
	assert.Equal(t, uint64(1_000_000_000), SolToLamports(decimal.NewFromInt(1)))
	assert.Equal(t, uint64(10_000_000), SolToLamports(decimal.RequireFromString("0.01")))
	assert.Equal(t, uint64(1), SolToLamports(decimal.RequireFromString("0.0000000019")))
	assert.Zero(t, SolToLamports(decimal.NewFromInt(-1)))

	assert.True(t, decimal.RequireFromString("0.5").Equal(LamportsToSol(500_000_000)))
}

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name  string
		fee   string
		units uint32
		want  uint64
	}{
		{name: "zero fee", fee: "0", units: 200_000, want: 0},
		{name: "zero units", fee: "0.001", units: 0, want: 0},
		{name: "negative", fee: "-0.001", units: 200_000, want: 0},
		// 0.0001 SOL = 100_000 lamports = 1e11 micro-lamports over 200k units
		{name: "spread over budget", fee: "0.0001", units: 200_000, want: 500_000},
		{name: "truncates", fee: "0.000000001", units: 3, want: 333_333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitPrice(decimal.RequireFromString(tt.fee), tt.units))
		})
	}
}

func TestBuildInstructions(t *testing.T) {
	t.Run("limit only", func(t *testing.T) {
		ixs, err := BuildInstructions(Config{})
		require.NoError(t, err)
		require.Len(t, ixs, 1)
		assert.Equal(t, computebudget.ProgramID, ixs[0].ProgramID())

		data, err := ixs[0].Data()
		require.NoError(t, err)
		require.Len(t, data, 5)
		assert.Equal(t, byte(computebudget.Instruction_SetComputeUnitLimit), data[0])
		assert.Equal(t, DefaultUnits, binary.LittleEndian.Uint32(data[1:]))
	})

	t.Run("limit and price", func(t *testing.T) {
		ixs, err := BuildInstructions(Config{Units: StandardUnits, PriorityFeeSol: decimal.RequireFromString("0.0004")})
		require.NoError(t, err)
		require.Len(t, ixs, 2)

		data, err := ixs[1].Data()
		require.NoError(t, err)
		require.Len(t, data, 9)
		assert.Equal(t, byte(computebudget.Instruction_SetComputeUnitPrice), data[0])
		assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[1:]))
	})
}
