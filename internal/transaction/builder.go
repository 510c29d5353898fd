// internal/transaction/builder.go
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/wallet"
)

var (
	ErrNoInstructions   = errors.New("no instructions provided")
	ErrInvalidBlockhash = errors.New("invalid blockhash")
	ErrMissingSignature = errors.New("transaction is missing signatures")
)

// BlockhashSource provides recent blockhashes for new transactions.
type BlockhashSource interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// Builder assembles, budgets and signs a transaction paid by a wallet.
type Builder struct {
	payer        *wallet.Wallet
	instructions []solana.Instruction
	signers      []solana.PrivateKey
	budget       computebudget.Config
	skipBudget   bool
}

// NewBuilder creates a builder whose fee payer is payer.
func NewBuilder(payer *wallet.Wallet) *Builder {
	return &Builder{
		payer:  payer,
		budget: computebudget.NewDefaultConfig(),
	}
}

// SetComputeBudget sets the compute unit limit and total priority fee.
func (b *Builder) SetComputeBudget(config computebudget.Config) *Builder {
	b.budget = config
	return b
}

// WithoutComputeBudget omits compute budget instructions.
func (b *Builder) WithoutComputeBudget() *Builder {
	b.skipBudget = true
	return b
}

// AddInstructions appends instructions to the transaction.
func (b *Builder) AddInstructions(instructions ...solana.Instruction) *Builder {
	b.instructions = append(b.instructions, instructions...)
	return b
}

// AddSigner adds a signer besides the payer, such as a new mint.
func (b *Builder) AddSigner(signer solana.PrivateKey) *Builder {
	b.signers = append(b.signers, signer)
	return b
}

// Build fetches a blockhash, prepends compute budget instructions, and signs.
func (b *Builder) Build(ctx context.Context, source BlockhashSource) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, ErrNoInstructions
	}

	blockhash, err := source.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("get recent blockhash: %w", err)
	}

	var budgetInstructions []solana.Instruction
	if !b.skipBudget {
		budgetInstructions, err = computebudget.BuildInstructions(b.budget)
		if err != nil {
			return nil, err
		}
	}

	instructions := make([]solana.Instruction, 0, len(budgetInstructions)+len(b.instructions))
	instructions = append(instructions, budgetInstructions...)
	instructions = append(instructions, b.instructions...)

	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(b.payer.PublicKey),
	)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := b.payer.SignTransaction(tx, b.signers...); err != nil {
		return nil, err
	}

	if err := Validate(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks that tx is ready to be sent.
func Validate(tx *solana.Transaction) error {
	if tx.Message.RecentBlockhash == (solana.Hash{}) {
		return ErrInvalidBlockhash
	}
	if len(tx.Message.Instructions) == 0 {
		return ErrNoInstructions
	}
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return fmt.Errorf("%w: have %d, want %d", ErrMissingSignature,
			len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	return nil
}
