// ====================================
// File: cmd/pumpfun/runtime.go
// ====================================
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/config"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/transaction"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/utils/logger"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/wallet"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/blockchain/solbc"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// runtime wires the configured collaborators of one command invocation.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *solbc.Client
	sdk      *pumpfun.SDK
	wallet   *wallet.Wallet
	executor *transaction.Executor
	metrics  *http.Server
}

// newRuntime loads configuration and builds the client stack. The wallet is
// loaded only when needWallet is set.
func newRuntime(c *cli.Context, needWallet bool) (*runtime, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging || c.Bool("debug")
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log}

	var metrics *solbc.Metrics
	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = solbc.NewMetrics(registry)
		rt.metrics = serveMetrics(cfg.MetricsAddr, registry, log.Logger)
	}

	rt.client, err = solbc.NewClient(cfg.RPCList, log.Logger, solbc.Config{
		Commitment:     cfg.RPCCommitment(),
		MaxRetries:     cfg.MaxRetries,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, metrics)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	if pool := rt.client.Pool(); pool.Size() > 1 {
		active := pool.HealthCheck(c.Context, 5*time.Second)
		if active == 0 {
			rt.close()
			return nil, fmt.Errorf("none of %d RPC endpoints is reachable", pool.Size())
		}
		if active < pool.Size() {
			log.Warn("Some RPC endpoints are unreachable",
				zap.Int("active", active),
				zap.Int("total", pool.Size()))
		}
	}

	opts := []pumpfun.Option{
		pumpfun.WithLogger(log.Logger),
		pumpfun.WithSellSlippageMode(cfg.SellMode()),
		pumpfun.WithCreateMintAuthority(true),
	}
	if cfg.GlobalCacheTTL > 0 {
		opts = append(opts, pumpfun.WithGlobalCache(pumpfun.NewGlobalCache(cfg.GlobalCacheTTL)))
	}
	rt.sdk = pumpfun.New(rt.client, opts...)

	if needWallet {
		rt.wallet, err = wallet.Load(cfg.PrivateKey, cfg.KeypairPath)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
		rt.executor = transaction.NewExecutor(rt.client, rt.wallet, computebudget.Config{
			Units:          cfg.ComputeUnits,
			PriorityFeeSol: cfg.PriorityFee(),
		}, log.Logger)

		log.Debug("Wallet loaded", zap.String("address", rt.wallet.String()))
	}

	return rt, nil
}

func serveMetrics(addr string, registry *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	return srv
}

func (rt *runtime) close() {
	if rt.client != nil {
		for _, st := range rt.client.Pool().Stats() {
			rt.log.Debug("RPC endpoint stats",
				zap.String("endpoint", st.URL),
				zap.Uint64("success", st.Success),
				zap.Uint64("errors", st.Errors),
				zap.Duration("avg_latency", st.AvgLatency))
		}
	}
	if rt.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = rt.metrics.Shutdown(ctx)
	}
	_ = rt.log.Close()
}
