// =============================================
// File: pkg/pumpfun/global.go
// =============================================
package pumpfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"go.uber.org/zap"
)

// GlobalAccountSize is the encoded size of the global account, discriminator included.
const GlobalAccountSize = 8 + // discriminator
	1 + // initialized
	32 + // authority
	32 + // fee_recipient
	5*8 + // initial reserves, total supply, fee basis points
	32 + // withdraw_authority
	1 + // enable_migrate
	8 + // pool_migration_fee
	8 + // creator_fee_basis_points
	7*32 + // fee_recipients
	32 // set_creator_authority

// GlobalAccount represents the structure of the Pump.fun global account data
type GlobalAccount struct {
	Discriminator               [8]byte
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
	WithdrawAuthority           solana.PublicKey
	EnableMigrate               bool
	PoolMigrationFee            uint64
	CreatorFeeBasisPoints       uint64
	FeeRecipients               [7]solana.PublicKey
	SetCreatorAuthority         solana.PublicKey
}

// AccountReader is the read side of the RPC collaborator.
type AccountReader interface {
	// GetAccountData returns the raw data of an account.
	GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
	// AccountExists reports whether an account is present on chain.
	AccountExists(ctx context.Context, address solana.PublicKey) (bool, error)
}

// DecodeGlobalAccount parses raw global account data. Bytes past the known
// layout are ignored.
func DecodeGlobalAccount(data []byte) (*GlobalAccount, error) {
	if len(data) < GlobalAccountSize {
		return nil, fmt.Errorf("%w: data too short: %d bytes, want %d", ErrDecode, len(data), GlobalAccountSize)
	}

	account := &GlobalAccount{}
	if err := borsh.Deserialize(account, data[:GlobalAccountSize]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return account, nil
}

// FetchGlobalAccount fetches and deserializes the global account data
func FetchGlobalAccount(ctx context.Context, reader AccountReader, logger *zap.Logger) (*GlobalAccount, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	globalAddr, err := GlobalPDA()
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching global account data", zap.String("address", globalAddr.String()))

	data, err := reader.GetAccountData(ctx, globalAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigNotFound, globalAddr, err)
	}

	account, err := DecodeGlobalAccount(data)
	if err != nil {
		logger.Warn("Global account data does not match layout",
			zap.String("address", globalAddr.String()),
			zap.Int("length", len(data)),
			zap.Error(err))
		return nil, err
	}

	logger.Debug("Global account data parsed",
		zap.Bool("initialized", account.Initialized),
		zap.String("fee_recipient", account.FeeRecipient.String()),
		zap.Uint64("fee_basis_points", account.FeeBasisPoints),
		zap.Uint64("creator_fee_basis_points", account.CreatorFeeBasisPoints))

	return account, nil
}
