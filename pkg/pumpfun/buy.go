// ==============================================
// File: pkg/pumpfun/buy.go
// ==============================================
package pumpfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"go.uber.org/zap"
)

// Buy holds the caller's buy parameters.
type Buy struct {
	Amount     uint64 // tokens to receive
	MaxSolCost uint64 // lamports the caller is willing to pay before slippage
	Slippage   int64  // tolerance; each unit adds 1% of MaxSolCost
}

// BuyArgs is the on-chain argument struct of the buy instruction.
type BuyArgs struct {
	Amount     uint64
	MaxSolCost uint64
}

// BuyAccounts lists the caller-supplied accounts of the buy instruction.
type BuyAccounts struct {
	Mint solana.PublicKey
	User solana.PublicKey
}

// globalFetcher returns the current global account.
type globalFetcher func(ctx context.Context) (*GlobalAccount, error)

// BuildBuyInstructions builds the instructions that buy tokens from the
// bonding curve. When the user's token account does not exist yet, an
// idempotent creation instruction is placed before the buy instruction.
func BuildBuyInstructions(ctx context.Context, reader AccountReader, accounts BuyAccounts, args Buy) ([]solana.Instruction, error) {
	fetch := func(ctx context.Context) (*GlobalAccount, error) {
		return FetchGlobalAccount(ctx, reader, nil)
	}
	return buildBuyInstructions(ctx, reader, fetch, accounts, args, zap.NewNop())
}

func buildBuyInstructions(
	ctx context.Context,
	reader AccountReader,
	fetchGlobal globalFetcher,
	accounts BuyAccounts,
	args Buy,
	logger *zap.Logger,
) ([]solana.Instruction, error) {
	if args.Slippage < 0 {
		return nil, &SlippageError{Amount: args.MaxSolCost, Slippage: args.Slippage, Err: ErrInvalidSlippage}
	}

	curve, err := deriveCurveAccounts(accounts.Mint, accounts.User)
	if err != nil {
		return nil, err
	}

	global, err := fetchGlobal(ctx)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	exists, err := reader.AccountExists(ctx, curve.AssociatedUser)
	if err != nil || !exists {
		logger.Debug("User token account missing, prepending creation",
			zap.String("ata", curve.AssociatedUser.String()),
			zap.Error(err))

		createATA, err := BuildCreateATAIdempotentInstruction(accounts.User, accounts.User, accounts.Mint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, createATA)
	}

	maxSolCost, err := AdjustForSlippage(args.MaxSolCost, args.Slippage)
	if err != nil {
		return nil, err
	}

	logger.Debug("Calculated buy parameters",
		zap.Uint64("amount", args.Amount),
		zap.Uint64("max_sol_cost", args.MaxSolCost),
		zap.Int64("slippage", args.Slippage),
		zap.Uint64("max_sol_cost_with_slippage", maxSolCost))

	data, err := encodeTradeData(BuyDiscriminator, BuyArgs{Amount: args.Amount, MaxSolCost: maxSolCost})
	if err != nil {
		return nil, err
	}

	// Account list must be in the exact order expected by the program
	insAccounts := solana.AccountMetaSlice{
		{PublicKey: curve.Global, IsSigner: false, IsWritable: false},
		{PublicKey: global.FeeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: curve.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: curve.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: curve.AssociatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: SysvarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunEventAuth, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunProgramID, IsSigner: false, IsWritable: false},
	}

	instructions = append(instructions, solana.NewInstruction(PumpFunProgramID, insAccounts, data))
	return instructions, nil
}

// encodeTradeData prefixes the borsh encoding of args with a discriminator.
func encodeTradeData(discriminator [8]byte, args interface{}) ([]byte, error) {
	argsBin, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize instruction args: %w", err)
	}

	data := make([]byte, 0, len(discriminator)+len(argsBin))
	data = append(data, discriminator[:]...)
	return append(data, argsBin...), nil
}
