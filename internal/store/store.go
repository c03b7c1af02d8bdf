// Package store provides access to the backing database holding ingested
// financial report rows, one table per report type.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNoRecord is returned when no row exists for the requested symbol.
var ErrNoRecord = errors.New("store: no record")

// Store defines the persistence interface consumed by the agent's
// capabilities.
type Store interface {
	// LatestFieldValue returns the value of field from the most recently
	// created row for symbol in table, rendered as a string. Returns
	// ErrNoRecord when no row matches.
	LatestFieldValue(ctx context.Context, table, field, symbol string) (string, error)

	// LatestRow returns all columns of the most recently created row for
	// symbol in table. Returns ErrNoRecord when no row matches.
	LatestRow(ctx context.Context, table, symbol string) (map[string]string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// identRe restricts table and column names to plain SQL identifiers.
// Table and field names arrive from model-chosen tool input, so they are
// interpolated into queries only after this check.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func validIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("store: invalid identifier %q", name)
	}
	return nil
}

// renderValue converts a scanned column value to its string form. The
// reconciliation contract compares raw string representations, so this is
// the single place that defines them.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
