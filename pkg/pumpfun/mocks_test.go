package pumpfun

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRPC implements RPC
type MockRPC struct {
	mock.Mock
}

func (m *MockRPC) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, address)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockRPC) AccountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockRPC) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockRPC) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

// MockBalanceReader implements TokenBalanceReader
type MockBalanceReader struct {
	mock.Mock
}

func (m *MockBalanceReader) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

var testFeeRecipient = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")

// testGlobalData returns encoded global account bytes with a known fee recipient.
func testGlobalData(t *testing.T) []byte {
	t.Helper()

	data, err := borsh.Serialize(GlobalAccount{
		Discriminator:               [8]byte{167, 232, 232, 177, 200, 108, 114, 127},
		Initialized:                 true,
		Authority:                   solana.NewWallet().PublicKey(),
		FeeRecipient:                testFeeRecipient,
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              95,
		CreatorFeeBasisPoints:       5,
	})
	require.NoError(t, err)
	require.Len(t, data, GlobalAccountSize)
	return data
}

// onGlobal registers the global account read on m.
func onGlobal(t *testing.T, m *MockRPC, data []byte, err error) *mock.Call {
	t.Helper()

	global, derr := GlobalPDA()
	require.NoError(t, derr)
	return m.On("GetAccountData", mock.Anything, global).Return(data, err)
}
