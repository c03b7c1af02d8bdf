package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/stockagent/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stockagent",
	Short: "Financial question-answering agent",
	Long:  "Routes financial questions to either model knowledge or a tool loop that fetches, queries and reconciles market data.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for local development; config proper comes from
		// viper below.
		_ = godotenv.Load()

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
