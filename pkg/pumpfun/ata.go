// ==============================================
// File: pkg/pumpfun/ata.go
// ==============================================
package pumpfun

import "github.com/gagliardetto/solana-go"

// BuildCreateATAIdempotentInstruction creates the associated token account of
// owner for mint, succeeding even when the account already exists.
func BuildCreateATAIdempotentInstruction(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ata, err := UserTokenAccount(owner, mint)
	if err != nil {
		return nil, err
	}

	keys := solana.AccountMetaSlice{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: ata, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(
		AssociatedTokenProgramID,
		keys,
		[]byte{createIdempotentATA},
	), nil
}
