// ==============================================
// File: pkg/pumpfun/balance.go
// ==============================================
package pumpfun

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// TokenBalanceReader reads the raw amount held by a token account.
type TokenBalanceReader interface {
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// GetTokenBalance returns the amount of mint held in owner's associated token
// account. A missing account has a zero balance.
func GetTokenBalance(ctx context.Context, reader TokenBalanceReader, owner, mint solana.PublicKey) (uint64, error) {
	ata, err := UserTokenAccount(owner, mint)
	if err != nil {
		return 0, err
	}

	balance, err := reader.GetTokenAccountBalance(ctx, ata)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get token balance of %s: %w", ata, err)
	}
	return balance, nil
}
