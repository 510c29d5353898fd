// ==============================================
// File: pkg/pumpfun/create.go
// ==============================================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// CreateArgs is the token metadata passed to the create instruction.
type CreateArgs struct {
	Name    string
	Symbol  string
	URI     string
	Creator solana.PublicKey
}

// CreateAccounts lists the caller-supplied accounts of the create instruction.
type CreateAccounts struct {
	Mint solana.PublicKey
	User solana.PublicKey

	// MintAuthority is inserted right after the mint when set. The deployed
	// program expects it; leave it zero for the legacy 13-account layout.
	MintAuthority solana.PublicKey
}

// BuildCreateInstruction builds the instruction that launches a new token on
// its bonding curve. The mint and the user must both sign the transaction.
func BuildCreateInstruction(accounts CreateAccounts, args CreateArgs) (solana.Instruction, error) {
	argsBin, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize create args: %w", err)
	}

	data := make([]byte, 0, len(CreateDiscriminator)+len(argsBin))
	data = append(data, CreateDiscriminator[:]...)
	data = append(data, argsBin...)

	bondingCurve, err := BondingCurvePDA(accounts.Mint)
	if err != nil {
		return nil, err
	}
	associatedBondingCurve, err := AssociatedBondingCurve(accounts.Mint)
	if err != nil {
		return nil, err
	}
	global, err := GlobalPDA()
	if err != nil {
		return nil, err
	}
	metadata, err := MetadataPDA(accounts.Mint)
	if err != nil {
		return nil, err
	}

	// Account list must be in the exact order expected by the program
	insAccounts := solana.AccountMetaSlice{
		{PublicKey: accounts.Mint, IsSigner: true, IsWritable: true},
	}
	if !accounts.MintAuthority.IsZero() {
		insAccounts = append(insAccounts, &solana.AccountMeta{PublicKey: accounts.MintAuthority})
	}
	insAccounts = append(insAccounts,
		&solana.AccountMeta{PublicKey: bondingCurve, IsSigner: false, IsWritable: true},
		&solana.AccountMeta{PublicKey: associatedBondingCurve, IsSigner: false, IsWritable: true},
		&solana.AccountMeta{PublicKey: global, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: MetadataProgramID, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: metadata, IsSigner: false, IsWritable: true},
		&solana.AccountMeta{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		&solana.AccountMeta{PublicKey: SystemProgramID, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: SysvarRentPubkey, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: PumpFunEventAuth, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: PumpFunProgramID, IsSigner: false, IsWritable: false},
	)

	return solana.NewInstruction(PumpFunProgramID, insAccounts, data), nil
}
