// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides, e.g. PUMPFUN_RPC_LIST.
const EnvPrefix = "PUMPFUN"

type Config struct {
	RPCList          []string      `mapstructure:"rpc_list"`
	Commitment       string        `mapstructure:"commitment"`
	PrivateKey       string        `mapstructure:"private_key"`
	KeypairPath      string        `mapstructure:"keypair_path"`
	DefaultSlippage  int64         `mapstructure:"default_slippage"`
	ComputeUnits     uint32        `mapstructure:"compute_units"`
	PriorityFeeSol   string        `mapstructure:"priority_fee_sol"`
	ConfirmTimeout   time.Duration `mapstructure:"confirm_timeout"`
	MaxRetries       uint          `mapstructure:"max_retries"`
	GlobalCacheTTL   time.Duration `mapstructure:"global_cache_ttl"`
	SellSlippageMode string        `mapstructure:"sell_slippage_mode"`
	DebugLogging     bool          `mapstructure:"debug_logging"`
	LogFile          string        `mapstructure:"log_file"`
	MetricsAddr      string        `mapstructure:"metrics_addr"`
}

const (
	DefaultRPC              = "https://api.mainnet-beta.solana.com"
	DefaultCommitment       = "confirmed"
	DefaultSlippage         = 5
	DefaultComputeUnits     = 200_000
	DefaultPriorityFeeSol   = "0.00001"
	DefaultConfirmTimeout   = 60 * time.Second
	DefaultMaxRetries       = 3
	DefaultSellSlippageMode = "inflate"
)

// LoadConfig reads the configuration file at path, if any, applies defaults
// and PUMPFUN_* environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_list":           []string{DefaultRPC},
		"commitment":         DefaultCommitment,
		"private_key":        "",
		"keypair_path":       "",
		"default_slippage":   DefaultSlippage,
		"compute_units":      DefaultComputeUnits,
		"priority_fee_sol":   DefaultPriorityFeeSol,
		"confirm_timeout":    DefaultConfirmTimeout,
		"max_retries":        DefaultMaxRetries,
		"global_cache_ttl":   time.Duration(0),
		"sell_slippage_mode": DefaultSellSlippageMode,
		"debug_logging":      false,
		"log_file":           "",
		"metrics_addr":       "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

// RPCCommitment returns the configured commitment level.
func (c *Config) RPCCommitment() rpc.CommitmentType {
	return rpc.CommitmentType(c.Commitment)
}

// PriorityFee returns the total priority fee in SOL.
func (c *Config) PriorityFee() decimal.Decimal {
	fee, err := decimal.NewFromString(c.PriorityFeeSol)
	if err != nil {
		return decimal.Zero
	}
	return fee
}

// SellMode returns how slippage is applied to the sell output floor.
func (c *Config) SellMode() pumpfun.SellSlippageMode {
	if c.SellSlippageMode == "deflate" {
		return pumpfun.SellSlippageDeflate
	}
	return pumpfun.SellSlippageInflate
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURLWithCache(rpcURL, "http"); err != nil {
			return fmt.Errorf("invalid RPC URL %q: %w", rpcURL, err)
		}
	}

	switch rpc.CommitmentType(cfg.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("invalid commitment %q", cfg.Commitment)
	}

	switch cfg.SellSlippageMode {
	case "inflate", "deflate":
	default:
		return fmt.Errorf("invalid sell_slippage_mode %q", cfg.SellSlippageMode)
	}

	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.DefaultSlippage < 0 {
		return errors.New("invalid default_slippage")
	}
	if cfg.ComputeUnits == 0 {
		return errors.New("invalid compute_units")
	}
	fee, err := decimal.NewFromString(cfg.PriorityFeeSol)
	if err != nil || fee.IsNegative() {
		return fmt.Errorf("invalid priority_fee_sol %q", cfg.PriorityFeeSol)
	}
	if cfg.ConfirmTimeout <= 0 {
		return errors.New("invalid confirm_timeout")
	}
	if cfg.GlobalCacheTTL < 0 {
		return errors.New("invalid global_cache_ttl")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

// loadEnvironmentVariables trims a comma-separated PUMPFUN_RPC_LIST override.
func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	envRPCList := v.GetString("rpc_list")
	if envRPCList == "" {
		return
	}

	var cleanRPCs []string
	for _, rpcURL := range strings.Split(envRPCList, ",") {
		clean := strings.TrimSpace(rpcURL)
		if clean != "" {
			cleanRPCs = append(cleanRPCs, clean)
		}
	}
	if len(cleanRPCs) > 0 {
		cfg.RPCList = cleanRPCs
	}
}
