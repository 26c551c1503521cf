package cmd

import (
	"github.com/spf13/cobra"

	"arber/db"
	"arber/logger"
	"arber/types"
	"arber/utils"
)

var (
	historyLimit       uint
	historyExecutionId string
)

var historyCmd = cobra.Command{
	Use:   "history",
	Short: "Show recorded arbitrage attempts",
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("history")

		if !db.Enabled() {
			logger.GlobalLogger.Warn("CLICKHOUSE_ADDR not configured, no history available")
			return
		}

		store := db.NewClickhouse()
		defer store.Close()

		if historyExecutionId != "" {
			attempt, err := store.QueryAttemptByExecutionId(historyExecutionId)
			if err != nil {
				logger.GlobalLogger.Error("Failed to query attempt", "executionId", historyExecutionId, "err", err)
				return
			}
			logAttempt(attempt)
			return
		}

		attempts, err := store.QueryRecentAttempts(historyLimit)
		if err != nil {
			logger.GlobalLogger.Error("Failed to query recent attempts", "err", err)
			return
		}
		for _, attempt := range attempts {
			logAttempt(attempt)
		}
		logger.GlobalLogger.Info("History query done", "count", len(attempts))
	},
}

func logAttempt(attempt *types.ArbAttempt) {
	logger.GlobalLogger.Info("Attempt",
		"executionId", attempt.ExecutionId,
		"mint", attempt.Mint,
		"amountInSol", utils.ToUiAmount(attempt.AmountIn),
		"profitSol", utils.ToUiAmountSigned(attempt.Profit),
		"tipSol", utils.ToUiAmount(attempt.TipLamports),
		"status", attempt.Status,
		"bundleId", attempt.BundleId,
		"txs", attempt.Transactions,
		"timestamp", attempt.Timestamp,
	)
}

func init() {
	historyCmd.Flags().UintVar(&historyLimit, "limit", 20, "Number of recent attempts to show")
	historyCmd.Flags().StringVar(&historyExecutionId, "execution-id", "", "Show one attempt by execution id")
	RootCmd.AddCommand(&historyCmd)
}
