package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool abstracts the pgx connection pool so tests can substitute pgxmock.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS overview (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	symbol     TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS income_statement (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	symbol     TEXT NOT NULL,
	ebitda     TEXT,
	net_income TEXT,
	total_revenue TEXT,
	gross_profit  TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS balance_sheet (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	symbol       TEXT NOT NULL,
	total_assets TEXT,
	total_liabilities TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cash_flow (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	symbol     TEXT NOT NULL,
	operating_cashflow TEXT,
	capital_expenditures TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_income_statement_symbol ON income_statement(symbol, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_balance_sheet_symbol ON balance_sheet(symbol, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_cash_flow_symbol ON cash_flow(symbol, created_at DESC);
`

// Migrate creates the report tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) LatestFieldValue(ctx context.Context, table, field, symbol string) (string, error) {
	if err := validIdent(table); err != nil {
		return "", err
	}
	if err := validIdent(field); err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE symbol = $1 ORDER BY created_at DESC LIMIT 1`,
		field, table,
	)

	var value any
	if err := s.pool.QueryRow(ctx, query, symbol).Scan(&value); err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrNoRecord
		}
		return "", eris.Wrapf(err, "postgres: query %s.%s", table, field)
	}
	return renderValue(value), nil
}

func (s *PostgresStore) LatestRow(ctx context.Context, table, symbol string) (map[string]string, error) {
	if err := validIdent(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE symbol = $1 ORDER BY created_at DESC LIMIT 1`,
		table,
	)

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query %s", table)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, eris.Wrapf(err, "postgres: query %s", table)
		}
		return nil, ErrNoRecord
	}

	values, err := rows.Values()
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: read row from %s", table)
	}

	out := make(map[string]string, len(values))
	for i, fd := range rows.FieldDescriptions() {
		out[string(fd.Name)] = renderValue(values[i])
	}
	return out, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
