// =============================
// File: pkg/pumpfun/pda.go
// =============================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BondingCurvePDA derives the bonding curve account of a mint.
func BondingCurvePDA(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(BondingCurveSeed), mint.Bytes()},
		PumpFunProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive bonding curve: %w", err)
	}
	return addr, nil
}

// AssociatedBondingCurve derives the token account owned by the bonding curve
// that holds the curve's token reserves.
func AssociatedBondingCurve(mint solana.PublicKey) (solana.PublicKey, error) {
	bondingCurve, err := BondingCurvePDA(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	addr, _, err := solana.FindAssociatedTokenAddress(bondingCurve, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated bonding curve: %w", err)
	}
	return addr, nil
}

// MetadataPDA derives the Metaplex metadata account of a mint. Unlike the
// other addresses it is owned by the metadata program.
func MetadataPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(MetadataSeed), MetadataProgramID.Bytes(), mint.Bytes()},
		MetadataProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive metadata account: %w", err)
	}
	return addr, nil
}

// GlobalPDA derives the program-wide configuration account.
func GlobalPDA() (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(GlobalSeed)},
		PumpFunProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive global account: %w", err)
	}
	return addr, nil
}

// MintAuthorityPDA derives the mint authority shared by all Pump.fun tokens.
func MintAuthorityPDA() (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(MintAuthoritySeed)},
		PumpFunProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive mint authority: %w", err)
	}
	return addr, nil
}

// CreatorVaultPDA derives the vault collecting creator fees for creator.
func CreatorVaultPDA(creator solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(CreatorVaultSeed), creator.Bytes()},
		PumpFunProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive creator vault: %w", err)
	}
	return addr, nil
}

// UserTokenAccount derives the associated token account of owner for mint.
func UserTokenAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	return addr, nil
}

// curveAccounts groups the addresses shared by buy and sell.
type curveAccounts struct {
	Global                 solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	AssociatedUser         solana.PublicKey
}

func deriveCurveAccounts(mint, user solana.PublicKey) (curveAccounts, error) {
	var (
		accs curveAccounts
		err  error
	)
	if accs.BondingCurve, err = BondingCurvePDA(mint); err != nil {
		return curveAccounts{}, err
	}
	if accs.AssociatedBondingCurve, err = AssociatedBondingCurve(mint); err != nil {
		return curveAccounts{}, err
	}
	if accs.Global, err = GlobalPDA(); err != nil {
		return curveAccounts{}, err
	}
	if accs.AssociatedUser, err = UserTokenAccount(user, mint); err != nil {
		return curveAccounts{}, err
	}
	return accs, nil
}
