// =============================
// File: pkg/pumpfun/config.go
// =============================
package pumpfun

import "github.com/gagliardetto/solana-go"

// Known Pump.fun protocol addresses
var (
	// Program ID for the Pump.fun bonding-curve program
	PumpFunProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

	// Event authority for the Pump.fun protocol
	PumpFunEventAuth = solana.MustPublicKeyFromBase58("Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1")
)

// Well-known programs and sysvars referenced by Pump.fun instructions.
// These must match the accounts the deployed program checks against.
var (
	SystemProgramID          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	SysvarRentPubkey         = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	MetadataProgramID        = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
)

// Instruction discriminators (first 8 bytes of instruction data)
var (
	CreateDiscriminator = [8]byte{24, 30, 200, 40, 5, 28, 7, 119}
	BuyDiscriminator    = [8]byte{102, 6, 61, 18, 1, 218, 235, 234}
	SellDiscriminator   = [8]byte{51, 230, 133, 164, 1, 127, 131, 173}
)

// PDA seeds
const (
	BondingCurveSeed  = "bonding-curve"
	MetadataSeed      = "metadata"
	GlobalSeed        = "global"
	MintAuthoritySeed = "mint-authority"
	CreatorVaultSeed  = "creator-vault"
)

// createIdempotentATA is the associated token program instruction tag for CreateIdempotent.
const createIdempotentATA byte = 1
