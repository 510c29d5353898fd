// internal/transaction/executor.go
package transaction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/wallet"
	"go.uber.org/zap"
)

// Client is the chain side of the executor.
type Client interface {
	BlockhashSource
	SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Executor builds, signs and submits transactions for one wallet.
type Executor struct {
	client Client
	wallet *wallet.Wallet
	budget computebudget.Config
	logger *zap.Logger
}

// NewExecutor creates an executor paying from w with the given compute budget.
func NewExecutor(client Client, w *wallet.Wallet, budget computebudget.Config, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		client: client,
		wallet: w,
		budget: budget,
		logger: logger.Named("executor"),
	}
}

// Execute sends instructions in one transaction and waits for confirmation.
// extraSigners sign alongside the wallet.
func (e *Executor) Execute(ctx context.Context, instructions []solana.Instruction, extraSigners ...solana.PrivateKey) (solana.Signature, error) {
	builder := NewBuilder(e.wallet).
		SetComputeBudget(e.budget).
		AddInstructions(instructions...)
	for _, signer := range extraSigners {
		builder.AddSigner(signer)
	}

	tx, err := builder.Build(ctx, e.client)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	e.logger.Debug("Submitting transaction",
		zap.Int("instructions", len(tx.Message.Instructions)),
		zap.Int("signers", len(tx.Signatures)),
		zap.Uint32("compute_units", e.budget.Units),
		zap.String("priority_fee_sol", e.budget.PriorityFeeSol.String()),
		zap.Uint64("priority_fee_lamports", computebudget.SolToLamports(e.budget.PriorityFeeSol)))

	sig, err := e.client.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return sig, fmt.Errorf("send transaction: %w", err)
	}

	e.logger.Info("Transaction confirmed", zap.String("signature", sig.String()))
	return sig, nil
}

// WithComputeUnits returns a copy of the executor with a different compute
// unit limit. The total priority fee is unchanged.
func (e *Executor) WithComputeUnits(units uint32) *Executor {
	clone := *e
	clone.budget.Units = units
	return &clone
}
