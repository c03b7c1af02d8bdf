package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/stockagent/pkg/alphavantage"
)

const fetchUsage = "Please format as: SYMBOL FUNCTION (e.g., AMD OVERVIEW)"

// overviewFields is the fixed subset of OVERVIEW fields rendered in the
// summary, in display order.
var overviewFields = []string{
	"Name",
	"Symbol",
	"Sector",
	"Industry",
	"MarketCapitalization",
	"PERatio",
	"PEGRatio",
	"DividendYield",
}

// NewFetchAlphaData builds the capability that fetches financial data
// from Alpha Vantage.
func NewFetchAlphaData(av alphavantage.Client) *Capability {
	return &Capability{
		Name:        "FetchAlphaData",
		InputFormat: "'<SYMBOL> <FUNCTION>' like 'AAPL OVERVIEW'",
		Description: "Fetch financial data from Alpha Vantage. Functions: OVERVIEW, INCOME_STATEMENT, BALANCE_SHEET, CASH_FLOW.",
		Run: func(ctx context.Context, input string) string {
			return fetchAlphaData(ctx, av, input)
		},
	}
}

func fetchAlphaData(ctx context.Context, av alphavantage.Client, input string) string {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) != 2 {
		return fetchUsage
	}
	symbol := strings.ToUpper(parts[0])
	function := strings.ToUpper(parts[1])

	if !alphavantage.IsValidFunction(function) {
		return fmt.Sprintf("%s is not a valid function. Valid functions: %s",
			function, strings.Join(alphavantage.Functions, ", "))
	}

	payload, err := av.Fetch(ctx, symbol, function)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Sprintf("Network error fetching %s %s: %v", symbol, function, err)
		}
		return fmt.Sprintf("Alpha Vantage error: %v", err)
	}

	if emptyPayload(payload) {
		return fmt.Sprintf("Warning: no usable data for %s %s. Response preview: %s",
			symbol, function, preview(payload, 200))
	}

	if function == alphavantage.FuncOverview {
		return renderOverview(payload)
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("Alpha Vantage error: %v", err)
	}
	return string(serialized)
}

// emptyPayload reports whether every field of the response is absent or
// null. Alpha Vantage signals unknown symbols with an empty object.
func emptyPayload(payload map[string]any) bool {
	for _, v := range payload {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val != "" && val != "None" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func renderOverview(payload map[string]any) string {
	var sb strings.Builder
	for _, f := range overviewFields {
		v, ok := payload[f].(string)
		if !ok || v == "" || v == "None" {
			v = "N/A"
		}
		fmt.Fprintf(&sb, "%s: %s\n", f, v)
	}
	return sb.String()
}

func preview(payload map[string]any, limit int) string {
	serialized, err := json.Marshal(payload)
	if err != nil {
		return "(unserializable response)"
	}
	s := string(serialized)
	if len(s) > limit {
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
