// Package pumpfun builds instructions for the Pump.fun bonding-curve program on the Solana blockchain.
//
// This package provides methods for:
// - Deriving the program addresses of a token (bonding curve, metadata, global, mint authority).
// - Fetching and decoding the program-wide global account.
// - Building create, buy and sell instructions with slippage applied.
//
// Key Types and Functions:
//
// - SDK struct: Facade binding the builders to an RPC collaborator.
// - New(): Creates an SDK with optional logger, global cache and slippage mode.
// - FetchGlobalAccount(): Retrieves the global account, including the fee recipient.
// - BuildCreateInstruction(), BuildBuyInstructions(), BuildSellInstructions(): Stand-alone builders.
// - AdjustForSlippage(): Applies the slippage tolerance to a lamport amount.
// - GetTokenBalance(): Reads a user's token balance, treating a missing account as zero.
//
// Detailed information about each function can be found in their respective source files:
//   - sdk.go: Facade and options.
//   - pda.go: Address derivation.
//   - global.go: Global account layout and fetching.
//   - global_cache.go: Optional TTL cache for the global account.
//   - create.go, buy.go, sell.go, ata.go: Instruction builders.
//   - slippage.go: Slippage arithmetic.
//   - balance.go: Token balance helper.
//
// Usage example:
//
//	client, err := solbc.NewClient([]string{rpcURL}, logger, solbc.DefaultConfig(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sdk := pumpfun.New(client, pumpfun.WithLogger(logger))
//
//	instructions, err := sdk.Buy(ctx, pumpfun.BuyAccounts{
//	    Mint: mint,
//	    User: wallet.PublicKey,
//	}, pumpfun.Buy{
//	    Amount:     1_000_000,
//	    MaxSolCost: 10_000_000,
//	    Slippage:   5, // +5%
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package pumpfun
