package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/stockagent/internal/capability"
	"github.com/sells-group/stockagent/pkg/alphavantage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SYMBOL FUNCTION",
	Short: "Fetch market data for a symbol directly",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		av := alphavantage.NewClient(cfg.AlphaVantage.Key,
			alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
			alphavantage.WithTimeout(time.Duration(cfg.AlphaVantage.TimeoutSecs)*time.Second),
		)
		c := capability.NewFetchAlphaData(av)
		fmt.Println(c.Run(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
