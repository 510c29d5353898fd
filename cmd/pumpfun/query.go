// ====================================
// File: cmd/pumpfun/query.go
// ====================================
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-sdk/internal/programs/computebudget"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "Show SOL and token balances of a wallet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mint", Usage: "Token mint address", Required: true},
			&cli.StringFlag{Name: "owner", Usage: "Owner address (defaults to the configured wallet)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c, !c.IsSet("owner"))
			if err != nil {
				return err
			}
			defer rt.close()

			mint, err := solana.PublicKeyFromBase58(c.String("mint"))
			if err != nil {
				return fmt.Errorf("invalid mint: %w", err)
			}
			var owner solana.PublicKey
			if c.IsSet("owner") {
				if owner, err = solana.PublicKeyFromBase58(c.String("owner")); err != nil {
					return fmt.Errorf("invalid owner: %w", err)
				}
			} else {
				owner = rt.wallet.PublicKey
			}

			var lamports, tokens uint64
			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error {
				var err error
				lamports, err = rt.client.GetBalance(ctx, owner)
				return err
			})
			g.Go(func() error {
				var err error
				tokens, err = pumpfun.GetTokenBalance(ctx, rt.client, owner, mint)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return printResult(c, map[string]string{
				"owner":  owner.String(),
				"mint":   mint.String(),
				"sol":    computebudget.LamportsToSol(lamports).String(),
				"tokens": formatUnits(tokens, TokenDecimals),
			})
		},
	}
}

func globalCommand() *cli.Command {
	return &cli.Command{
		Name:  "global",
		Usage: "Show the program's Global account",
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c, false)
			if err != nil {
				return err
			}
			defer rt.close()

			global, err := rt.sdk.Global(c.Context)
			if err != nil {
				if errors.Is(err, pumpfun.ErrConfigNotFound) {
					return fmt.Errorf("global account is not initialized on this cluster: %w", err)
				}
				return err
			}

			return printResult(c, map[string]string{
				"initialized":                    strconv.FormatBool(global.Initialized),
				"authority":                      global.Authority.String(),
				"fee_recipient":                  global.FeeRecipient.String(),
				"initial_virtual_token_reserves": formatUnits(global.InitialVirtualTokenReserves, TokenDecimals),
				"initial_virtual_sol_reserves":   computebudget.LamportsToSol(global.InitialVirtualSolReserves).String(),
				"initial_real_token_reserves":    formatUnits(global.InitialRealTokenReserves, TokenDecimals),
				"token_total_supply":             formatUnits(global.TokenTotalSupply, TokenDecimals),
				"fee_basis_points":               strconv.FormatUint(global.FeeBasisPoints, 10),
				"creator_fee_basis_points":       strconv.FormatUint(global.CreatorFeeBasisPoints, 10),
				"enable_migrate":                 strconv.FormatBool(global.EnableMigrate),
			})
		},
	}
}

// printResult writes fields as JSON when --json is set, otherwise as sorted
// key: value lines.
func printResult(c *cli.Context, fields map[string]string) error {
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", k, fields[k])
	}
	return nil
}
