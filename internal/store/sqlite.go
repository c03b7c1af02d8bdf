package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. It backs local
// development and the REPL when no Postgres is available.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS overview (
	id         TEXT PRIMARY KEY,
	symbol     TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS income_statement (
	id            TEXT PRIMARY KEY,
	symbol        TEXT NOT NULL,
	ebitda        TEXT,
	net_income    TEXT,
	total_revenue TEXT,
	gross_profit  TEXT,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS balance_sheet (
	id                TEXT PRIMARY KEY,
	symbol            TEXT NOT NULL,
	total_assets      TEXT,
	total_liabilities TEXT,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS cash_flow (
	id                   TEXT PRIMARY KEY,
	symbol               TEXT NOT NULL,
	operating_cashflow   TEXT,
	capital_expenditures TEXT,
	created_at           DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_income_statement_symbol ON income_statement(symbol, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_balance_sheet_symbol ON balance_sheet(symbol, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_cash_flow_symbol ON cash_flow(symbol, created_at DESC);
`

// Migrate creates the report tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

func (s *SQLiteStore) LatestFieldValue(ctx context.Context, table, field, symbol string) (string, error) {
	if err := validIdent(table); err != nil {
		return "", err
	}
	if err := validIdent(field); err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE symbol = ? ORDER BY created_at DESC LIMIT 1`,
		field, table,
	)

	var value any
	if err := s.db.QueryRowContext(ctx, query, symbol).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNoRecord
		}
		return "", eris.Wrapf(err, "sqlite: query %s.%s", table, field)
	}
	return renderValue(value), nil
}

func (s *SQLiteStore) LatestRow(ctx context.Context, table, symbol string) (map[string]string, error) {
	if err := validIdent(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE symbol = ? ORDER BY created_at DESC LIMIT 1`,
		table,
	)

	rows, err := s.db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", table)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, eris.Wrapf(err, "sqlite: query %s", table)
		}
		return nil, ErrNoRecord
	}

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: columns")
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, eris.Wrapf(err, "sqlite: scan row from %s", table)
	}

	out := make(map[string]string, len(cols))
	for i, col := range cols {
		out[col] = renderValue(values[i])
	}
	return out, nil
}

// InsertRow inserts a row into table with the given column values. Used
// for local seeding and tests; the agent itself never writes.
func (s *SQLiteStore) InsertRow(ctx context.Context, table, symbol string, fields map[string]string) error {
	if err := validIdent(table); err != nil {
		return err
	}

	cols := []string{"id", "symbol"}
	args := []any{uuid.NewString(), symbol}
	for col, val := range fields {
		if err := validIdent(col); err != nil {
			return err
		}
		cols = append(cols, col)
		args = append(args, val)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(cols, ", "), placeholders,
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return eris.Wrapf(err, "sqlite: insert into %s", table)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
