package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/stockagent/internal/reconcile"
	"github.com/sells-group/stockagent/pkg/alphavantage"
)

var checkCmd = &cobra.Command{
	Use:   "check FIELD SYMBOL TABLE",
	Short: "Reconcile a stored field against the market-data source",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "init store")
		}
		defer st.Close()

		av := alphavantage.NewClient(cfg.AlphaVantage.Key,
			alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
			alphavantage.WithTimeout(time.Duration(cfg.AlphaVantage.TimeoutSecs)*time.Second),
		)
		engine := reconcile.New(st, av, cfg.Reconcile.ScriptPath, cfg.Reconcile.FallbackScriptURL)

		res := engine.Reconcile(ctx, args[0], args[1], args[2])
		fmt.Println(reconcile.RenderResult(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
