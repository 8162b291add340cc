package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "collab-radar",
	Short: "Public-evidence aggregation for business relationships",
	Long:  "Gathers evidence that two companies work together from news search, press-release indexes, and SEC EDGAR filings, then classifies and exports it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
