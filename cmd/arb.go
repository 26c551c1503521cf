package cmd

import (
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"arber/arb"
	"arber/db"
	"arber/logger"
	"arber/utils"
)

var (
	arbInterval   uint64
	arbMinProfit  float64
	arbPartnerFee float64
	arbWait       bool
)

var arbCmd = cobra.Command{
	Use:   "arb <mint> <amount>",
	Short: "Continuously evaluate WSOL round trips against a mint and submit profitable ones",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("arb")

		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			logger.ArbLogger.Error("Invalid mint address", "mint", args[0], "err", err)
			return
		}
		amountIn, err := strconv.ParseFloat(args[1], 64)
		if err != nil || amountIn <= 0 {
			logger.ArbLogger.Error("Invalid SOL amount", "amount", args[1], "err", err)
			return
		}

		var store db.Database
		if db.Enabled() {
			store = db.NewClickhouse()
			defer store.Close()
			if err := store.EnsureDatabaseExists(); err != nil {
				logger.GlobalLogger.Warn("Failed to ensure history database, continuing without it", "err", err)
				store = nil
			} else if err := store.CreateTables(); err != nil {
				logger.GlobalLogger.Warn("Failed to create history tables, continuing without them", "err", err)
				store = nil
			}
		}

		params := arb.RunParams{
			Mint:                mint,
			AmountInLamports:    utils.ToLamports(amountIn),
			Interval:            time.Duration(arbInterval) * time.Second,
			MinProfitLamports:   utils.ToLamports(arbMinProfit),
			PartnerFeeFraction:  arbPartnerFee,
			WaitForConfirmation: arbWait,
		}
		if err := arb.RunArb(params, store); err != nil {
			logger.ArbLogger.Error("Error running arb command", "err", err)
		}
	},
}

func init() {
	arbCmd.Flags().Uint64Var(&arbInterval, "interval", 1, "Interval between arbitrage attempts in seconds")
	arbCmd.Flags().Float64Var(&arbMinProfit, "min-profit", 0.0001, "Minimum profit in SOL to trigger arbitrage")
	arbCmd.Flags().Float64Var(&arbPartnerFee, "partner-fee", 0.0, "Partner referral fee fraction netted from profit")
	arbCmd.Flags().BoolVar(&arbWait, "wait-for-confirmation", false, "Poll the relay until the bundle lands or times out")
	RootCmd.AddCommand(&arbCmd)
}
