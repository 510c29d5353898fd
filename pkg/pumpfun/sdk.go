// ==============================================
// File: pkg/pumpfun/sdk.go
// ==============================================
package pumpfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// RPC is the chain collaborator the SDK builds instructions against.
type RPC interface {
	AccountReader

	// GetLatestBlockhash returns a recent blockhash for new transactions.
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	// SendAndConfirmTransaction submits a signed transaction and waits for confirmation.
	SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// SDK builds Pump.fun instructions on top of an RPC collaborator.
type SDK struct {
	rpc              RPC
	logger           *zap.Logger
	cache            *GlobalCache
	sellMode         SellSlippageMode
	useMintAuthority bool
}

// Option configures an SDK.
type Option func(*SDK)

// WithLogger sets the logger used by the SDK.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SDK) {
		if logger != nil {
			s.logger = logger.Named("pumpfun")
		}
	}
}

// WithGlobalCache serves global account reads from cache instead of fetching on every trade.
func WithGlobalCache(cache *GlobalCache) Option {
	return func(s *SDK) {
		s.cache = cache
	}
}

// WithSellSlippageMode selects how slippage is applied to the sell output floor.
func WithSellSlippageMode(mode SellSlippageMode) Option {
	return func(s *SDK) {
		s.sellMode = mode
	}
}

// WithCreateMintAuthority includes the mint authority account in create instructions.
func WithCreateMintAuthority(enabled bool) Option {
	return func(s *SDK) {
		s.useMintAuthority = enabled
	}
}

// New creates an SDK bound to rpc.
func New(rpc RPC, opts ...Option) *SDK {
	s := &SDK{
		rpc:      rpc,
		logger:   zap.NewNop(),
		sellMode: SellSlippageInflate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RPC returns the collaborator the SDK was built with.
func (s *SDK) RPC() RPC {
	return s.rpc
}

// Create builds the instruction that launches a new token.
func (s *SDK) Create(accounts CreateAccounts, args CreateArgs) (solana.Instruction, error) {
	if s.useMintAuthority && accounts.MintAuthority.IsZero() {
		mintAuthority, err := MintAuthorityPDA()
		if err != nil {
			return nil, err
		}
		accounts.MintAuthority = mintAuthority
	}

	s.logger.Debug("Building create instruction",
		zap.String("mint", accounts.Mint.String()),
		zap.String("user", accounts.User.String()),
		zap.String("name", args.Name),
		zap.String("symbol", args.Symbol))

	return BuildCreateInstruction(accounts, args)
}

// Buy builds the instructions that buy tokens from a bonding curve.
func (s *SDK) Buy(ctx context.Context, accounts BuyAccounts, args Buy) ([]solana.Instruction, error) {
	s.logger.Debug("Building buy instructions",
		zap.String("mint", accounts.Mint.String()),
		zap.String("user", accounts.User.String()))

	return buildBuyInstructions(ctx, s.rpc, s.fetchGlobal, accounts, args, s.logger)
}

// Sell builds the instruction that sells tokens to a bonding curve.
func (s *SDK) Sell(ctx context.Context, accounts SellAccounts, args Sell) ([]solana.Instruction, error) {
	s.logger.Debug("Building sell instructions",
		zap.String("mint", accounts.Mint.String()),
		zap.String("user", accounts.User.String()))

	return buildSellInstructions(ctx, s.fetchGlobal, accounts, args, s.sellMode, s.logger)
}

// Global returns the current global account, from cache when one is installed.
func (s *SDK) Global(ctx context.Context) (*GlobalAccount, error) {
	return s.fetchGlobal(ctx)
}

func (s *SDK) fetchGlobal(ctx context.Context) (*GlobalAccount, error) {
	if s.cache != nil {
		return s.cache.Get(ctx, s.rpc, s.logger)
	}
	return FetchGlobalAccount(ctx, s.rpc, s.logger)
}
