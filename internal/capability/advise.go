package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/stockagent/pkg/alphavantage"
	"github.com/sells-group/stockagent/pkg/llm"
)

// NewEvaluateBuyability builds the capability that fetches a symbol's
// overview and asks the model for a buyability assessment grounded in it.
func NewEvaluateBuyability(av alphavantage.Client, lm llm.Client) *Capability {
	return &Capability{
		Name:        "EvaluateBuyability",
		InputFormat: "'<SYMBOL>' like 'AMD'",
		Description: "Evaluate whether a stock is buyable based on its fundamentals.",
		Run: func(ctx context.Context, input string) string {
			symbol := strings.ToUpper(strings.TrimSpace(input))
			if symbol == "" || strings.ContainsAny(symbol, " \t") {
				return "Please format as: SYMBOL (e.g., AMD)"
			}

			overview := fetchAlphaData(ctx, av, symbol+" "+alphavantage.FuncOverview)

			prompt := fmt.Sprintf(
				"You are a financial assistant. Based only on the company overview below, "+
					"give a short buyability assessment for %s with one-line reasoning.\n\n%s",
				symbol, overview,
			)
			reply, err := lm.Complete(ctx, "", []llm.Message{{Role: "user", Content: prompt}})
			if err != nil {
				return fmt.Sprintf("Buyability evaluation error: %v", err)
			}
			return reply
		},
	}
}

// NewSuggestStocksByStrategy builds the capability that suggests symbols
// matching a free-text investment strategy.
func NewSuggestStocksByStrategy(lm llm.Client) *Capability {
	return &Capability{
		Name:        "SuggestStocksByStrategy",
		InputFormat: "free text like 'undervalued tech stocks'",
		Description: "Suggest stock symbols based on a strategy description.",
		Run: func(ctx context.Context, input string) string {
			strategy := strings.TrimSpace(input)
			if strategy == "" {
				return "Please describe a strategy, e.g. 'undervalued tech stocks'"
			}

			prompt := fmt.Sprintf(
				"You are a financial assistant. Suggest up to five stock ticker symbols "+
					"matching this strategy, one per line with a short reason: %s",
				strategy,
			)
			reply, err := lm.Complete(ctx, "", []llm.Message{{Role: "user", Content: prompt}})
			if err != nil {
				return fmt.Sprintf("Stock suggestion error: %v", err)
			}
			return reply
		},
	}
}
