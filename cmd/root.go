package cmd

import (
	"fmt"
	"os"

	"asset-inventory/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where the optional .env file is read from.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-inventory",
	Short: "IT Asset Inventory Service",
	Long: `Asset Inventory scores hardware assets for operational criticality and keeps
an audit ledger of the assets that need attention, with evidence stored on S3.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config keeps CLI errors readable
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}
