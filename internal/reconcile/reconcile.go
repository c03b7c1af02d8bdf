// Package reconcile cross-checks stored field values against the
// authoritative market-data source.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/stockagent/internal/model"
	"github.com/sells-group/stockagent/internal/store"
	"github.com/sells-group/stockagent/pkg/alphavantage"
)

// FormatHint is returned for instructions that do not match the expected
// shape.
const FormatHint = "Format: Check <field> for <symbol> in <table>"

// Engine compares stored values against their Alpha Vantage source.
type Engine struct {
	store             store.Store
	av                alphavantage.Client
	scriptPath        string
	fallbackScriptURL string
	http              *http.Client
}

// New creates a reconciliation engine.
func New(st store.Store, av alphavantage.Client, scriptPath, fallbackScriptURL string) *Engine {
	return &Engine{
		store:             st,
		av:                av,
		scriptPath:        scriptPath,
		fallbackScriptURL: fallbackScriptURL,
		http:              &http.Client{Timeout: 15 * time.Second},
	}
}

// Check parses a "Check <field> for <symbol> in <table>" instruction and
// returns the rendered comparison. All failures come back as descriptive
// text, never as an error: the orchestrator folds whatever Check returns
// into its transcript and keeps going.
func (e *Engine) Check(ctx context.Context, instruction string) string {
	parts := strings.Fields(strings.TrimSpace(instruction))
	if len(parts) < 6 {
		return FormatHint
	}
	field, symbol, table := parts[1], parts[3], parts[5]

	res := e.Reconcile(ctx, field, symbol, table)
	return RenderResult(res)
}

// Reconcile compares the stored value of field for symbol in table
// against the latest annual income statement from the market-data source.
// The verdict is raw string equality; no numeric normalization is applied.
func (e *Engine) Reconcile(ctx context.Context, field, symbol, table string) model.ReconciliationResult {
	symbol = strings.ToUpper(symbol)
	res := model.ReconciliationResult{
		Field:   field,
		Symbol:  symbol,
		Table:   table,
		Verdict: model.VerdictError,
	}

	stored, err := e.store.LatestFieldValue(ctx, table, field, symbol)
	if err != nil {
		if errors.Is(err, store.ErrNoRecord) {
			res.StoredValue = fmt.Sprintf("No record for %s in %s", symbol, table)
		} else {
			zap.L().Warn("reconcile: store lookup failed",
				zap.String("table", table),
				zap.String("field", field),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			res.StoredValue = fmt.Sprintf("store lookup failed: %v", err)
		}
		return res
	}
	res.StoredValue = stored

	stmt, err := e.av.FetchIncomeStatement(ctx, symbol)
	if err != nil || stmt.LatestAnnual() == nil {
		if err != nil {
			zap.L().Warn("reconcile: source fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
		res.SourceValue = "failed to fetch source data"
		return res
	}

	res.SourceValue = sourceValue(stmt.LatestAnnual(), field)

	if res.StoredValue == res.SourceValue {
		res.Verdict = model.VerdictMatch
	} else {
		res.Verdict = model.VerdictMismatch
	}

	// Auxiliary reconciliation script, reserved for future extension.
	// Absence or fetch failure never affects the verdict.
	e.loadScript(ctx)

	return res
}

// sourceValue finds the report entry whose key matches field after
// case-folding and dropping underscores, so stored snake_case column
// names line up with the source's camelCase keys.
func sourceValue(report map[string]string, field string) string {
	want := normalizeKey(field)
	for k, v := range report {
		if normalizeKey(k) == want {
			return v
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

// RenderResult formats a ReconciliationResult for the orchestrator.
func RenderResult(res model.ReconciliationResult) string {
	if res.Verdict == model.VerdictError {
		// StoredValue or SourceValue carries the failure description.
		if res.SourceValue != "" {
			return res.SourceValue
		}
		return res.StoredValue
	}
	return fmt.Sprintf(
		"%s %s comparison:\n  Store:  %s\n  Source: %s\n%s",
		res.Symbol, res.Field, res.StoredValue, res.SourceValue, res.Verdict,
	)
}

// loadScript loads the local reconciliation script, falling back to the
// configured remote location when the local file is absent.
func (e *Engine) loadScript(ctx context.Context) {
	if e.scriptPath != "" {
		if _, err := os.ReadFile(e.scriptPath); err == nil {
			return
		}
	}
	if e.fallbackScriptURL == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.fallbackScriptURL, nil)
	if err != nil {
		zap.L().Warn("reconcile: bad fallback script URL",
			zap.String("url", e.fallbackScriptURL),
			zap.Error(err),
		)
		return
	}
	resp, err := e.http.Do(req)
	if err != nil {
		zap.L().Warn("reconcile: fallback script fetch failed",
			zap.String("url", e.fallbackScriptURL),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("reconcile: fallback script fetch returned non-200",
			zap.String("url", e.fallbackScriptURL),
			zap.Int("status", resp.StatusCode),
		)
	}
}
