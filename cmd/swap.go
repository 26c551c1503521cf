package cmd

import (
	"context"
	"strconv"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"arber/config"
	"arber/jup"
	"arber/logger"
	"arber/sol"
	"arber/utils"
)

var swapCmd = cobra.Command{
	Use:   "swap <mint> <direction> <amount>",
	Short: "Execute one swap between WSOL and a mint (direction: buy or sell)",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("swap")

		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			logger.ArbLogger.Error("Invalid mint address", "mint", args[0], "err", err)
			return
		}
		direction := args[1]
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil || amount <= 0 {
			logger.ArbLogger.Error("Invalid amount", "amount", args[2], "err", err)
			return
		}

		var tokenIn, tokenOut solana.PublicKey
		switch direction {
		case "buy":
			tokenIn, tokenOut = sol.WSOL, mint
		case "sell":
			tokenIn, tokenOut = mint, sol.WSOL
		default:
			logger.ArbLogger.Error("Invalid direction, want buy or sell", "direction", direction)
			return
		}

		payer, err := sol.GetPayer()
		if err != nil {
			logger.ArbLogger.Error("Failed to load payer key", "err", err)
			return
		}
		rpcClient, err := sol.GetRpcClient()
		if err != nil {
			logger.ArbLogger.Error("Failed to get RPC client", "err", err)
			return
		}

		ctx := context.Background()
		inMint, err := sol.GetMint(ctx, rpcClient, tokenIn)
		if err != nil {
			logger.ArbLogger.Error("Failed to fetch input mint", "mint", tokenIn, "err", err)
			return
		}
		amountRaw := utils.ToTokenAmount(amount, inMint.Decimals)
		logger.ArbLogger.Info("Swapping", "tokenIn", tokenIn, "tokenOut", tokenOut, "amount", amount, "amountRaw", amountRaw)

		jupClient := jup.NewClient()
		quote, err := jupClient.Quote(&jup.QuoteRequest{
			InputMint:   tokenIn,
			OutputMint:  tokenOut,
			Amount:      amountRaw,
			SlippageBps: config.SwapSlippageBps,
			Venues:      jup.AllVenues(),
		})
		if err != nil {
			logger.ArbLogger.Error("Quote failed", "err", err)
			return
		}
		logger.ArbLogger.Info("Quoted", "outAmount", quote.OutAmount, "otherAmountThreshold", quote.OtherAmountThreshold, "priceImpactPct", quote.PriceImpactPct)

		swapResp, err := jupClient.Swap(payer.PublicKey(), quote, jup.SwapConfig{
			WrapAndUnwrapSol:              true,
			ComputeUnitPriceMicroLamports: 50000,
		})
		if err != nil {
			logger.ArbLogger.Error("Swap request failed", "err", err)
			return
		}

		tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(swapResp.SwapTransaction))
		if err != nil {
			logger.ArbLogger.Error("Failed to decode swap transaction", "err", err)
			return
		}
		if err := sol.SignTransaction(tx, payer); err != nil {
			logger.ArbLogger.Error("Failed to sign swap transaction", "err", err)
			return
		}

		if sol.IsSimulateOnly() {
			if err := sol.SimulateTransaction(ctx, rpcClient, tx); err != nil {
				logger.ArbLogger.Error("Simulation failed", "err", err)
			}
			return
		}

		sig, err := sol.SendAndConfirmTransaction(ctx, rpcClient, tx)
		if err != nil {
			logger.ArbLogger.Error("Swap did not confirm", "signature", sig, "err", err)
			return
		}
		logger.ArbLogger.Info("Swap confirmed", "signature", sig)
	},
}

func init() {
	RootCmd.AddCommand(&swapCmd)
}
