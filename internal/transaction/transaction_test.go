package transaction

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockClient implements Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockClient) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(solana.NewWallet().PrivateKey.String())
	require.NoError(t, err)
	return w
}

func memoInstruction(signers ...solana.PublicKey) solana.Instruction {
	accounts := make(solana.AccountMetaSlice, 0, len(signers))
	for _, s := range signers {
		accounts = append(accounts, &solana.AccountMeta{PublicKey: s, IsSigner: true, IsWritable: true})
	}
	return solana.NewInstruction(solana.MemoProgramID, accounts, []byte("pumpfun"))
}

func TestBuilderBuild(t *testing.T) {
	ctx := context.Background()
	w := testWallet(t)
	blockhash := solana.Hash{9}

	client := new(MockClient)
	client.On("GetLatestBlockhash", ctx).Return(blockhash, nil)

	t.Run("prepends compute budget", func(t *testing.T) {
		tx, err := NewBuilder(w).
			SetComputeBudget(computebudget.Config{Units: 100_000, PriorityFeeSol: decimal.RequireFromString("0.0001")}).
			AddInstructions(memoInstruction(w.PublicKey)).
			Build(ctx, client)
		require.NoError(t, err)

		assert.Equal(t, blockhash, tx.Message.RecentBlockhash)
		require.Len(t, tx.Message.Instructions, 3)
		assert.Equal(t, w.PublicKey, tx.Message.AccountKeys[0], "payer comes first")
		require.Len(t, tx.Signatures, 1)
		assert.NoError(t, tx.VerifySignatures())
	})

	t.Run("without budget", func(t *testing.T) {
		tx, err := NewBuilder(w).
			WithoutComputeBudget().
			AddInstructions(memoInstruction(w.PublicKey)).
			Build(ctx, client)
		require.NoError(t, err)
		assert.Len(t, tx.Message.Instructions, 1)
	})

	t.Run("extra signer", func(t *testing.T) {
		mint, err := wallet.NewMintKeypair()
		require.NoError(t, err)

		tx, err := NewBuilder(w).
			AddInstructions(memoInstruction(w.PublicKey, mint.PublicKey())).
			AddSigner(mint).
			Build(ctx, client)
		require.NoError(t, err)
		assert.Len(t, tx.Signatures, 2)
		assert.NoError(t, tx.VerifySignatures())
	})

	t.Run("no instructions", func(t *testing.T) {
		_, err := NewBuilder(w).Build(ctx, client)
		assert.ErrorIs(t, err, ErrNoInstructions)
	})

	t.Run("blockhash failure", func(t *testing.T) {
		failing := new(MockClient)
		failing.On("GetLatestBlockhash", ctx).Return(solana.Hash{}, errors.New("rpc down"))

		_, err := NewBuilder(w).AddInstructions(memoInstruction(w.PublicKey)).Build(ctx, failing)
		assert.ErrorContains(t, err, "rpc down")
	})
}

func TestValidate(t *testing.T) {
	w := testWallet(t)

	tx, err := solana.NewTransaction([]solana.Instruction{memoInstruction(w.PublicKey)}, solana.Hash{}, solana.TransactionPayer(w.PublicKey))
	require.NoError(t, err)
	assert.ErrorIs(t, Validate(tx), ErrInvalidBlockhash)

	tx.Message.RecentBlockhash = solana.Hash{1}
	assert.ErrorIs(t, Validate(tx), ErrMissingSignature)

	require.NoError(t, w.SignTransaction(tx))
	assert.NoError(t, Validate(tx))
}

func TestExecutorExecute(t *testing.T) {
	ctx := context.Background()
	w := testWallet(t)
	sig := solana.Signature{1, 2, 3}

	client := new(MockClient)
	client.On("GetLatestBlockhash", ctx).Return(solana.Hash{5}, nil)
	client.On("SendAndConfirmTransaction", ctx, mock.AnythingOfType("*solana.Transaction")).Return(sig, nil)

	executor := NewExecutor(client, w, computebudget.NewDefaultConfig(), zap.NewNop())
	got, err := executor.Execute(ctx, []solana.Instruction{memoInstruction(w.PublicKey)})
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	sent := client.Calls[1].Arguments.Get(1).(*solana.Transaction)
	assert.Len(t, sent.Message.Instructions, 2)
	client.AssertExpectations(t)
}

func TestExecutorSendFailure(t *testing.T) {
	ctx := context.Background()
	w := testWallet(t)
	cause := errors.New("blockhash not found")

	client := new(MockClient)
	client.On("GetLatestBlockhash", ctx).Return(solana.Hash{5}, nil)
	client.On("SendAndConfirmTransaction", ctx, mock.Anything).Return(solana.Signature{}, cause)

	_, err := NewExecutor(client, w, computebudget.NewDefaultConfig(), zap.NewNop()).
		Execute(ctx, []solana.Instruction{memoInstruction(w.PublicKey)})
	assert.ErrorIs(t, err, cause)
}

func TestExecutorWithComputeUnits(t *testing.T) {
	ctx := context.Background()
	w := testWallet(t)

	client := new(MockClient)
	client.On("GetLatestBlockhash", ctx).Return(solana.Hash{5}, nil)
	client.On("SendAndConfirmTransaction", ctx, mock.Anything).Return(solana.Signature{7}, nil)

	base := NewExecutor(client, w, computebudget.NewDefaultConfig(), zap.NewNop())
	_, err := base.WithComputeUnits(computebudget.CreateUnits).
		Execute(ctx, []solana.Instruction{memoInstruction(w.PublicKey)})
	require.NoError(t, err)

	sent := client.Calls[1].Arguments.Get(1).(*solana.Transaction)
	limit := sent.Message.Instructions[0].Data
	require.Len(t, limit, 5)
	assert.Equal(t, computebudget.CreateUnits, binary.LittleEndian.Uint32(limit[1:]))
	assert.Equal(t, computebudget.DefaultUnits, base.budget.Units, "original executor is unchanged")
}
