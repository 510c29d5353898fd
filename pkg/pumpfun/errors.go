// =============================
// File: pkg/pumpfun/errors.go
// =============================
package pumpfun

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlippage is returned when a negative slippage tolerance is supplied.
	ErrInvalidSlippage = errors.New("invalid slippage")

	// ErrConfigNotFound is returned when the global account cannot be read.
	ErrConfigNotFound = errors.New("failed to fetch global state from chain")

	// ErrDecode is returned when the global account bytes do not match the expected layout.
	ErrDecode = errors.New("failed to deserialize global state")

	// ErrOverflow is returned when the slippage-adjusted amount does not fit in a uint64.
	ErrOverflow = errors.New("overflow")

	// ErrAccountNotFound is returned by RPC implementations for accounts that do not exist.
	ErrAccountNotFound = errors.New("account not found")
)

// SlippageError describes a slippage adjustment that could not be applied.
type SlippageError struct {
	Amount   uint64
	Slippage int64
	Err      error
}

func (e *SlippageError) Error() string {
	return fmt.Sprintf("cannot apply slippage %d to amount %d: %v", e.Slippage, e.Amount, e.Err)
}

func (e *SlippageError) Unwrap() error {
	return e.Err
}
