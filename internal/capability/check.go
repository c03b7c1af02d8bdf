package capability

import (
	"context"

	"github.com/sells-group/stockagent/internal/reconcile"
)

// NewRunManualCheck builds the capability that verifies a stored field
// against its market-data source.
func NewRunManualCheck(engine *reconcile.Engine) *Capability {
	return &Capability{
		Name:        "RunManualCheck",
		InputFormat: "'Check <field> for <symbol> in <table>'",
		Description: "Check if a specific field (like ebitda) for a stock symbol in a store table matches the source data.",
		Run: func(ctx context.Context, input string) string {
			return engine.Check(ctx, input)
		},
	}
}
