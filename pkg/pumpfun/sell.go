// ==============================================
// File: pkg/pumpfun/sell.go
// ==============================================
package pumpfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Sell holds the caller's sell parameters.
type Sell struct {
	Amount       uint64 // tokens to sell
	MinSolOutput uint64 // lamports expected before slippage
	Slippage     int64
}

// SellArgs is the on-chain argument struct of the sell instruction.
type SellArgs struct {
	Amount       uint64
	MinSolOutput uint64
}

// SellAccounts lists the caller-supplied accounts of the sell instruction.
type SellAccounts struct {
	Mint solana.PublicKey
	User solana.PublicKey
}

// BuildSellInstructions builds the instruction that sells tokens back to the
// bonding curve. The user's token account is assumed to exist.
//
// The minimum SOL output is adjusted with the same formula as the buy
// ceiling, so a positive slippage raises the floor.
func BuildSellInstructions(ctx context.Context, reader AccountReader, accounts SellAccounts, args Sell) ([]solana.Instruction, error) {
	fetch := func(ctx context.Context) (*GlobalAccount, error) {
		return FetchGlobalAccount(ctx, reader, nil)
	}
	return buildSellInstructions(ctx, fetch, accounts, args, SellSlippageInflate, zap.NewNop())
}

func buildSellInstructions(
	ctx context.Context,
	fetchGlobal globalFetcher,
	accounts SellAccounts,
	args Sell,
	mode SellSlippageMode,
	logger *zap.Logger,
) ([]solana.Instruction, error) {
	if args.Slippage < 0 {
		return nil, &SlippageError{Amount: args.MinSolOutput, Slippage: args.Slippage, Err: ErrInvalidSlippage}
	}

	curve, err := deriveCurveAccounts(accounts.Mint, accounts.User)
	if err != nil {
		return nil, err
	}

	global, err := fetchGlobal(ctx)
	if err != nil {
		return nil, err
	}

	var minSolOutput uint64
	switch mode {
	case SellSlippageDeflate:
		minSolOutput, err = ReduceForSlippage(args.MinSolOutput, args.Slippage)
	default:
		minSolOutput, err = AdjustForSlippage(args.MinSolOutput, args.Slippage)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Calculated sell parameters",
		zap.Uint64("amount", args.Amount),
		zap.Uint64("min_sol_output", args.MinSolOutput),
		zap.Int64("slippage", args.Slippage),
		zap.Uint64("min_sol_output_with_slippage", minSolOutput))

	data, err := encodeTradeData(SellDiscriminator, SellArgs{Amount: args.Amount, MinSolOutput: minSolOutput})
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
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunEventAuth, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunProgramID, IsSigner: false, IsWritable: false},
	}

	return []solana.Instruction{solana.NewInstruction(PumpFunProgramID, insAccounts, data)}, nil
}
