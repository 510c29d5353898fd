// pkg/blockchain/solbc/errors.go
package solbc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

var (
	// ErrNoEndpoints is returned when a client is created without RPC endpoints.
	ErrNoEndpoints = errors.New("empty RPC list")

	// ErrNoActiveClients is returned when every endpoint in the pool is marked down.
	ErrNoActiveClients = errors.New("no active RPC clients available")

	// ErrConfirmationTimeout is returned when a transaction is not confirmed in time.
	ErrConfirmationTimeout = errors.New("transaction confirmation timeout")

	// ErrTransactionFailed is returned when a transaction landed with an execution error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Error is an RPC failure annotated with the method and endpoint that produced it.
type Error struct {
	Err      error
	Endpoint string
	Method   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("RPC error [%s] at %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the method and endpoint that produced it.
func NewError(err error, endpoint, method string) error {
	return &Error{
		Err:      err,
		Endpoint: endpoint,
		Method:   method,
	}
}

// IsAccountNotFoundError reports whether err means the requested account does not exist.
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "could not find account")
}

// isRateLimitError reports whether the endpoint throttled the request.
func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
