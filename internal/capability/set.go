package capability

import (
	"github.com/sells-group/stockagent/internal/mapping"
	"github.com/sells-group/stockagent/internal/reconcile"
	"github.com/sells-group/stockagent/internal/store"
	"github.com/sells-group/stockagent/pkg/alphavantage"
	"github.com/sells-group/stockagent/pkg/llm"
)

// DefaultRegistry builds the full capability set in its fixed order.
func DefaultRegistry(
	av alphavantage.Client,
	st store.Store,
	engine *reconcile.Engine,
	ix *mapping.Index,
	lm llm.Client,
) (*Registry, error) {
	r := NewRegistry()
	for _, c := range []*Capability{
		NewFetchAlphaData(av),
		NewRunManualCheck(engine),
		NewQueryStore(st),
		NewFieldMapper(ix),
		NewEvaluateBuyability(av, lm),
		NewSuggestStocksByStrategy(lm),
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
