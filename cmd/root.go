package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "arber",
	Short: "A round-trip arbitrage bot for Solana, submitting through Jito bundles",
}
