// pkg/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"go.uber.org/zap"
)

// Config controls commitment levels, retries and confirmation of the client.
type Config struct {
	Commitment     rpc.CommitmentType
	SkipPreflight  bool
	MaxRetries     uint
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// DefaultConfig returns the settings used when fields are left zero.
func DefaultConfig() Config {
	return Config{
		Commitment:     rpc.CommitmentConfirmed,
		MaxRetries:     3,
		ConfirmTimeout: 60 * time.Second,
		PollInterval:   500 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Commitment == "" {
		c.Commitment = def.Commitment
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = def.ConfirmTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	return c
}

// Client is a thin adapter over solana-go that satisfies pumpfun.RPC.
type Client struct {
	pool    *Pool
	logger  *zap.Logger
	config  Config
	metrics *Metrics
}

var _ pumpfun.RPC = (*Client)(nil)
var _ pumpfun.TokenBalanceReader = (*Client)(nil)

// NewClient creates a client over the given RPC endpoints. metrics may be nil.
func NewClient(rpcList []string, logger *zap.Logger, config Config, metrics *Metrics) (*Client, error) {
	pool, err := NewPool(rpcList)
	if err != nil {
		return nil, err
	}
	return newClient(pool, logger, config, metrics), nil
}

func newClient(pool *Pool, logger *zap.Logger, config Config, metrics *Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		pool:    pool,
		logger:  logger.Named("solbc-client"),
		config:  config.withDefaults(),
		metrics: metrics,
	}
}

// Pool returns the endpoint pool of the client.
func (c *Client) Pool() *Pool {
	return c.pool
}

// callNode runs fn against the next active endpoint.
func (c *Client) callNode(method string, fn func(api rpcAPI) error) error {
	n, err := c.pool.next()
	if err != nil {
		return err
	}

	start := time.Now()
	err = fn(n.api)
	notFound := err != nil && IsAccountNotFoundError(err)

	c.metrics.recordCall(method, n.url, start, err)
	n.updateMetrics(err == nil || notFound, time.Since(start))

	if err == nil {
		return nil
	}
	if notFound {
		return fmt.Errorf("%w: %w", pumpfun.ErrAccountNotFound, NewError(err, n.url, method))
	}
	return NewError(err, n.url, method)
}

// call runs fn, failing over to the other endpoints on transport errors.
func (c *Client) call(ctx context.Context, method string, fn func(api rpcAPI) error) error {
	var lastErr error
	for attempt := 0; attempt < c.pool.Size(); attempt++ {
		err := c.callNode(method, fn)
		if err == nil || errors.Is(err, pumpfun.ErrAccountNotFound) || errors.Is(err, ErrNoActiveClients) {
			return err
		}
		lastErr = err
		if ctx.Err() != nil {
			return lastErr
		}

		c.logger.Debug("RPC call failed, trying next endpoint",
			zap.String("method", method),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		c.metrics.recordRetry(method)
	}
	return lastErr
}

// GetAccountData returns the raw data of an account.
func (c *Client) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	var result *rpc.GetAccountInfoResult
	err := c.call(ctx, "getAccountInfo", func(api rpcAPI) error {
		var err error
		result, err = api.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
			Commitment: c.config.Commitment,
			Encoding:   solana.EncodingBase64,
		})
		return err
	})
	if err != nil {
		c.logger.Debug("GetAccountData error",
			zap.String("pubkey", address.String()),
			zap.Error(err))
		return nil, err
	}
	if result == nil || result.Value == nil || result.Value.Data == nil {
		return nil, fmt.Errorf("%w: %s", pumpfun.ErrAccountNotFound, address)
	}
	return result.Value.Data.GetBinary(), nil
}

// AccountExists reports whether an account is present on chain.
func (c *Client) AccountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	_, err := c.GetAccountData(ctx, address)
	if err != nil {
		if errors.Is(err, pumpfun.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetLatestBlockhash returns the latest finalized blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	var result *rpc.GetLatestBlockhashResult
	err := c.call(ctx, "getLatestBlockhash", func(api rpcAPI) error {
		var err error
		result, err = api.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		return err
	})
	if err != nil {
		c.logger.Error("GetLatestBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetBalance returns the lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	var result *rpc.GetBalanceResult
	err := c.call(ctx, "getBalance", func(api rpcAPI) error {
		var err error
		result, err = api.GetBalance(ctx, address, c.config.Commitment)
		return err
	})
	if err != nil {
		c.logger.Error("GetBalance error", zap.Error(err))
		return 0, err
	}
	return result.Value, nil
}

// GetTokenAccountBalance returns the raw amount held by a token account.
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	var result *rpc.GetTokenAccountBalanceResult
	err := c.call(ctx, "getTokenAccountBalance", func(api rpcAPI) error {
		var err error
		result, err = api.GetTokenAccountBalance(ctx, account, c.config.Commitment)
		return err
	})
	if err != nil {
		return 0, err
	}
	if result == nil || result.Value == nil {
		return 0, fmt.Errorf("%w: %s", pumpfun.ErrAccountNotFound, account)
	}

	amount, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token amount %q: %w", result.Value.Amount, err)
	}
	return amount, nil
}

// SendTransaction submits a signed transaction, retrying transient failures
// with exponential backoff. Preflight simulation failures are not retried.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	operation := func() (solana.Signature, error) {
		var sig solana.Signature
		err := c.callNode("sendTransaction", func(api rpcAPI) error {
			var err error
			sig, err = api.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
				SkipPreflight:       c.config.SkipPreflight,
				PreflightCommitment: c.config.Commitment,
			})
			return err
		})
		if err == nil {
			return sig, nil
		}

		if failure := AnalyzeSendError(err); failure != nil {
			fields := []zap.Field{zap.Strings("logs", failure.Logs)}
			if failure.Anchor != nil {
				fields = append(fields,
					zap.Int("code", failure.Anchor.Code),
					zap.String("name", failure.Anchor.Name),
					zap.String("message", failure.Anchor.Msg))
			}
			c.logger.Warn("Transaction simulation failed", fields...)
			return solana.Signature{}, backoff.Permanent(err)
		}
		if errors.Is(err, ErrNoActiveClients) {
			return solana.Signature{}, backoff.Permanent(err)
		}

		c.metrics.recordRetry("sendTransaction")
		c.logger.Warn("Retrying transaction send", zap.Error(err))
		return solana.Signature{}, err
	}

	sig, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.config.MaxRetries),
	)
	if err != nil {
		c.logger.Error("SendTransaction error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// errPending marks a signature that has not reached the target commitment yet.
var errPending = errors.New("transaction pending")

// WaitForConfirmation polls the signature status until the transaction is
// confirmed, fails on chain, or the confirmation timeout elapses.
func (c *Client) WaitForConfirmation(ctx context.Context, signature solana.Signature) error {
	operation := func() (struct{}, error) {
		var result *rpc.GetSignatureStatusesResult
		err := c.callNode("getSignatureStatuses", func(api rpcAPI) error {
			var err error
			result, err = api.GetSignatureStatuses(ctx, false, signature)
			return err
		})
		if err != nil {
			c.logger.Warn("Error getting signature statuses", zap.Error(err))
			return struct{}{}, err
		}

		if result == nil || len(result.Value) == 0 || result.Value[0] == nil {
			return struct{}{}, errPending
		}

		status := result.Value[0]
		if status.Err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err))
		}
		if reachedCommitment(status.ConfirmationStatus, c.config.Commitment) {
			return struct{}{}, nil
		}
		return struct{}{}, errPending
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.config.PollInterval)),
		backoff.WithMaxElapsedTime(c.config.ConfirmTimeout),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTransactionFailed) || ctx.Err() != nil {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrConfirmationTimeout, signature, err)
}

// SendAndConfirmTransaction submits a signed transaction and waits until it
// reaches the configured commitment.
func (c *Client) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	start := time.Now()

	sig, err := c.SendTransaction(ctx, tx)
	if err != nil {
		c.metrics.recordTransaction(start, err)
		return solana.Signature{}, err
	}

	c.logger.Debug("Transaction sent, awaiting confirmation", zap.String("signature", sig.String()))

	if err := c.WaitForConfirmation(ctx, sig); err != nil {
		c.metrics.recordTransaction(start, err)
		c.logger.Error("Transaction confirmation failed",
			zap.String("signature", sig.String()),
			zap.Error(err))
		return sig, err
	}

	c.metrics.recordTransaction(start, nil)
	c.logger.Info("Transaction confirmed",
		zap.String("signature", sig.String()),
		zap.Duration("elapsed", time.Since(start)))
	return sig, nil
}

// reachedCommitment reports whether status satisfies the target commitment.
func reachedCommitment(status rpc.ConfirmationStatusType, target rpc.CommitmentType) bool {
	switch status {
	case rpc.ConfirmationStatusFinalized:
		return true
	case rpc.ConfirmationStatusConfirmed:
		return target != rpc.CommitmentFinalized
	case rpc.ConfirmationStatusProcessed:
		return target == rpc.CommitmentProcessed
	default:
		return false
	}
}
