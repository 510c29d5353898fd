package pumpfun

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSellInstructions(t *testing.T) {
	ctx := context.Background()
	mint := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	accounts := SellAccounts{Mint: mint, User: user}

	t.Run("layout", func(t *testing.T) {
		rpc := new(MockRPC)
		onGlobal(t, rpc, testGlobalData(t), nil)

		ixs, err := BuildSellInstructions(ctx, rpc, accounts, Sell{Amount: 5_000, MinSolOutput: 2_000_000, Slippage: 5})
		require.NoError(t, err)
		require.Len(t, ixs, 1)

		data, err := ixs[0].Data()
		require.NoError(t, err)
		require.Len(t, data, 24)
		assert.Equal(t, SellDiscriminator[:], data[:8])
		assert.Equal(t, uint64(5_000), binary.LittleEndian.Uint64(data[8:16]))
		assert.Equal(t, uint64(2_100_000), binary.LittleEndian.Uint64(data[16:24]))

		bondingCurve, _ := BondingCurvePDA(mint)
		associatedBondingCurve, _ := AssociatedBondingCurve(mint)
		global, _ := GlobalPDA()
		ata, _ := UserTokenAccount(user, mint)

		expected := []*solana.AccountMeta{
			{PublicKey: global},
			{PublicKey: testFeeRecipient, IsWritable: true},
			{PublicKey: mint},
			{PublicKey: bondingCurve, IsWritable: true},
			{PublicKey: associatedBondingCurve, IsWritable: true},
			{PublicKey: ata, IsWritable: true},
			{PublicKey: user, IsSigner: true, IsWritable: true},
			{PublicKey: SystemProgramID},
			{PublicKey: AssociatedTokenProgramID},
			{PublicKey: TokenProgramID},
			{PublicKey: PumpFunEventAuth},
			{PublicKey: PumpFunProgramID},
		}
		assert.Equal(t, expected, ixs[0].Accounts())
		rpc.AssertNotCalled(t, "AccountExists", mock.Anything, mock.Anything)
	})

	t.Run("zero slippage keeps floor", func(t *testing.T) {
		rpc := new(MockRPC)
		onGlobal(t, rpc, testGlobalData(t), nil)

		ixs, err := BuildSellInstructions(ctx, rpc, accounts, Sell{Amount: 1, MinSolOutput: 777})
		require.NoError(t, err)
		data, _ := ixs[0].Data()
		assert.Equal(t, uint64(777), binary.LittleEndian.Uint64(data[16:24]))
	})

	t.Run("negative slippage", func(t *testing.T) {
		rpc := new(MockRPC)

		ixs, err := BuildSellInstructions(ctx, rpc, accounts, Sell{Amount: 1, MinSolOutput: 1, Slippage: -10})
		assert.ErrorIs(t, err, ErrInvalidSlippage)
		assert.Nil(t, ixs)
		rpc.AssertNotCalled(t, "GetAccountData", mock.Anything, mock.Anything)
	})

	t.Run("missing global", func(t *testing.T) {
		rpc := new(MockRPC)
		onGlobal(t, rpc, nil, ErrAccountNotFound)

		ixs, err := BuildSellInstructions(ctx, rpc, accounts, Sell{Amount: 1, MinSolOutput: 1})
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.Nil(t, ixs)
	})

	t.Run("overflow", func(t *testing.T) {
		rpc := new(MockRPC)
		onGlobal(t, rpc, testGlobalData(t), nil)

		ixs, err := BuildSellInstructions(ctx, rpc, accounts, Sell{Amount: 1, MinSolOutput: ^uint64(0) - 1, Slippage: 500})
		assert.ErrorIs(t, err, ErrOverflow)
		assert.Nil(t, ixs)
	})
}

func TestSellDeflateMode(t *testing.T) {
	rpc := new(MockRPC)
	onGlobal(t, rpc, testGlobalData(t), nil)

	fetch := func(ctx context.Context) (*GlobalAccount, error) {
		return FetchGlobalAccount(ctx, rpc, nil)
	}
	accounts := SellAccounts{Mint: solana.NewWallet().PublicKey(), User: solana.NewWallet().PublicKey()}

	ixs, err := buildSellInstructions(context.Background(), fetch, accounts,
		Sell{Amount: 1, MinSolOutput: 2_000_000, Slippage: 5}, SellSlippageDeflate, zap.NewNop())
	require.NoError(t, err)

	data, err := ixs[0].Data()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_900_000), binary.LittleEndian.Uint64(data[16:24]))
}
