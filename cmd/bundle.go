package cmd

import (
	"github.com/spf13/cobra"

	"arber/config"
	"arber/jito"
	"arber/logger"
)

var bundleCmd = cobra.Command{
	Use:   "bundle <bundle-id>",
	Short: "Poll the relay for a submitted bundle until it lands or times out",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("bundle")

		bundleId := args[0]
		logger.JitoLogger.Info("Querying bundle", "bundleId", bundleId)

		client := jito.NewClient()
		txs, err := jito.WaitForBundleConfirmation(
			func(id string) ([]jito.BundleStatus, error) {
				return client.GetBundleStatuses([]string{id})
			},
			bundleId,
			config.BundleQueryPollInterval,
			config.BundleQueryTimeout,
		)
		if err != nil {
			logger.JitoLogger.Error("Bundle did not confirm", "bundleId", bundleId, "err", err)
			return
		}
		logger.JitoLogger.Info("Bundle transactions", "bundleId", bundleId, "txs", txs)
	},
}

func init() {
	RootCmd.AddCommand(&bundleCmd)
}
