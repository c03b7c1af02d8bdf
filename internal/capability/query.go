package capability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/stockagent/internal/store"
)

const queryUsage = "Please format as: SYMBOL TABLE (e.g., AMD income_statement)"

// NewQueryStore builds the capability that fetches the latest stored row
// for a symbol from a report table.
func NewQueryStore(st store.Store) *Capability {
	return &Capability{
		Name:        "QueryStore",
		InputFormat: "'<SYMBOL> <table>' like 'AMD income_statement'",
		Description: "Fetch the most recent stored row for a stock symbol from a report table.",
		Run: func(ctx context.Context, input string) string {
			return queryStore(ctx, st, input)
		},
	}
}

func queryStore(ctx context.Context, st store.Store, input string) string {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) != 2 {
		return queryUsage
	}
	symbol := strings.ToUpper(parts[0])
	table := strings.ToLower(parts[1])

	row, err := st.LatestRow(ctx, table, symbol)
	if err != nil {
		if errors.Is(err, store.ErrNoRecord) {
			return fmt.Sprintf("No record for %s in %s", symbol, table)
		}
		return fmt.Sprintf("Store error: %v", err)
	}

	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Latest %s row for %s:\n", table, symbol)
	for _, col := range cols {
		fmt.Fprintf(&sb, "  %s: %s\n", col, row[col])
	}
	return sb.String()
}
