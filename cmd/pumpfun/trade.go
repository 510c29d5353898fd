// ====================================
// File: cmd/pumpfun/trade.go
// ====================================
package main

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/wallet"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Launch a new token on a bonding curve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Token name", Required: true},
			&cli.StringFlag{Name: "symbol", Usage: "Token symbol", Required: true},
			&cli.StringFlag{Name: "uri", Usage: "Metadata URI", Required: true},
			&cli.BoolFlag{
				Name:  "legacy-accounts",
				Usage: "Omit the mint authority account from the create instruction",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c, true)
			if err != nil {
				return err
			}
			defer rt.close()

			mint, err := wallet.NewMintKeypair()
			if err != nil {
				return err
			}

			accounts := pumpfun.CreateAccounts{Mint: mint.PublicKey(), User: rt.wallet.PublicKey}
			sdk := rt.sdk
			if c.Bool("legacy-accounts") {
				sdk = pumpfun.New(rt.client, pumpfun.WithLogger(rt.log.Logger))
			}

			ix, err := sdk.Create(accounts, pumpfun.CreateArgs{
				Name:    c.String("name"),
				Symbol:  c.String("symbol"),
				URI:     c.String("uri"),
				Creator: rt.wallet.PublicKey,
			})
			if err != nil {
				return err
			}

			log := rt.log.WithMint(mint.PublicKey().String())
			log.Info("Creating token", zap.String("name", c.String("name")), zap.String("symbol", c.String("symbol")))

			executor := rt.executor
			if rt.cfg.ComputeUnits < computebudget.CreateUnits {
				executor = executor.WithComputeUnits(computebudget.CreateUnits)
			}

			sig, err := executor.Execute(c.Context, []solana.Instruction{ix}, mint)
			if err != nil {
				return fmt.Errorf("create failed: %w", err)
			}
			rt.log.WithTransaction(sig.String()).Info("Token created", zap.String("mint", mint.PublicKey().String()))
			return printResult(c, map[string]string{
				"signature": sig.String(),
				"mint":      mint.PublicKey().String(),
			})
		},
	}
}

func buyCommand() *cli.Command {
	return &cli.Command{
		Name:  "buy",
		Usage: "Buy tokens from a bonding curve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mint", Usage: "Token mint address", Required: true},
			&cli.StringFlag{Name: "amount", Usage: "Token amount to buy", Required: true},
			&cli.StringFlag{Name: "max-sol-cost", Usage: "SOL cost before slippage", Required: true},
			&cli.Int64Flag{Name: "slippage", Usage: "Slippage in percent (defaults to default_slippage)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c, true)
			if err != nil {
				return err
			}
			defer rt.close()

			mint, err := solana.PublicKeyFromBase58(c.String("mint"))
			if err != nil {
				return fmt.Errorf("invalid mint: %w", err)
			}
			amount, err := parseTokens(c.String("amount"))
			if err != nil {
				return err
			}
			maxSolCost, err := parseSol(c.String("max-sol-cost"))
			if err != nil {
				return err
			}
			slippage := rt.cfg.DefaultSlippage
			if c.IsSet("slippage") {
				slippage = c.Int64("slippage")
			}

			defer rt.log.TrackPerformance("buy")()

			instructions, err := rt.sdk.Buy(c.Context,
				pumpfun.BuyAccounts{Mint: mint, User: rt.wallet.PublicKey},
				pumpfun.Buy{Amount: amount, MaxSolCost: maxSolCost, Slippage: slippage},
			)
			if err != nil {
				return err
			}

			sig, err := rt.executor.Execute(c.Context, instructions)
			if err != nil {
				return fmt.Errorf("buy failed: %w", err)
			}
			rt.log.WithTransaction(sig.String()).Info("Buy confirmed",
				zap.String("mint", mint.String()),
				zap.Uint64("amount", amount))
			return printResult(c, map[string]string{"signature": sig.String()})
		},
	}
}

func sellCommand() *cli.Command {
	return &cli.Command{
		Name:  "sell",
		Usage: "Sell tokens back to a bonding curve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mint", Usage: "Token mint address", Required: true},
			&cli.StringFlag{Name: "amount", Usage: "Token amount to sell"},
			&cli.BoolFlag{Name: "all", Usage: "Sell the whole wallet balance"},
			&cli.StringFlag{Name: "min-sol-output", Usage: "Expected SOL output before slippage", Required: true},
			&cli.Int64Flag{Name: "slippage", Usage: "Slippage in percent (defaults to default_slippage)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c, true)
			if err != nil {
				return err
			}
			defer rt.close()

			mint, err := solana.PublicKeyFromBase58(c.String("mint"))
			if err != nil {
				return fmt.Errorf("invalid mint: %w", err)
			}

			var amount uint64
			switch {
			case c.Bool("all"):
				amount, err = pumpfun.GetTokenBalance(c.Context, rt.client, rt.wallet.PublicKey, mint)
				if err != nil {
					return err
				}
				if amount == 0 {
					return errors.New("nothing to sell: token balance is zero")
				}
			case c.IsSet("amount"):
				amount, err = parseTokens(c.String("amount"))
				if err != nil {
					return err
				}
			default:
				return errors.New("either --amount or --all is required")
			}

			minSolOutput, err := parseSol(c.String("min-sol-output"))
			if err != nil {
				return err
			}
			slippage := rt.cfg.DefaultSlippage
			if c.IsSet("slippage") {
				slippage = c.Int64("slippage")
			}

			if ata, err := rt.wallet.GetATA(mint); err == nil {
				rt.log.WithMint(mint.String()).Debug("Selling from token account",
					zap.String("ata", ata.String()),
					zap.String("amount", formatUnits(amount, TokenDecimals)))
			}

			defer rt.log.TrackPerformance("sell")()

			instructions, err := rt.sdk.Sell(c.Context,
				pumpfun.SellAccounts{Mint: mint, User: rt.wallet.PublicKey},
				pumpfun.Sell{Amount: amount, MinSolOutput: minSolOutput, Slippage: slippage},
			)
			if err != nil {
				return err
			}

			sig, err := rt.executor.Execute(c.Context, instructions)
			if err != nil {
				return fmt.Errorf("sell failed: %w", err)
			}
			rt.log.WithTransaction(sig.String()).Info("Sell confirmed",
				zap.String("mint", mint.String()),
				zap.Uint64("amount", amount))
			return printResult(c, map[string]string{
				"signature": sig.String(),
				"amount":    formatUnits(amount, TokenDecimals),
			})
		},
	}
}
