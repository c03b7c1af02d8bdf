package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgresLatestFieldValue(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT ebitda FROM income_statement WHERE symbol = \$1 ORDER BY created_at DESC LIMIT 1`).
		WithArgs("AMD").
		WillReturnRows(pgxmock.NewRows([]string{"ebitda"}).AddRow("5500000000"))

	got, err := st.LatestFieldValue(context.Background(), "income_statement", "ebitda", "AMD")

	require.NoError(t, err)
	assert.Equal(t, "5500000000", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLatestFieldValue_NoRows(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT ebitda FROM income_statement`).
		WithArgs("ZZZZ").
		WillReturnRows(pgxmock.NewRows([]string{"ebitda"}))

	_, err := st.LatestFieldValue(context.Background(), "income_statement", "ebitda", "ZZZZ")

	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestPostgresLatestFieldValue_NullRendersEmpty(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT net_income FROM income_statement`).
		WithArgs("AMD").
		WillReturnRows(pgxmock.NewRows([]string{"net_income"}).AddRow(nil))

	got, err := st.LatestFieldValue(context.Background(), "income_statement", "net_income", "AMD")

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestPostgresLatestFieldValue_QueryError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT ebitda FROM income_statement`).
		WithArgs("AMD").
		WillReturnError(errors.New("connection reset"))

	_, err := st.LatestFieldValue(context.Background(), "income_statement", "ebitda", "AMD")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRecord)
}

func TestPostgresRejectsInvalidIdentifiers(t *testing.T) {
	st, _ := newMockStore(t)
	ctx := context.Background()

	_, err := st.LatestFieldValue(ctx, "income_statement; DROP TABLE x", "ebitda", "AMD")
	assert.Error(t, err)

	_, err = st.LatestFieldValue(ctx, "income_statement", "ebitda = '' OR 1=1", "AMD")
	assert.Error(t, err)

	_, err = st.LatestRow(ctx, "income_statement--", "AMD")
	assert.Error(t, err)
}

func TestPostgresLatestRow(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM income_statement WHERE symbol = \$1 ORDER BY created_at DESC LIMIT 1`).
		WithArgs("AMD").
		WillReturnRows(pgxmock.NewRows([]string{"symbol", "ebitda", "net_income"}).
			AddRow("AMD", "5500000000", nil))

	row, err := st.LatestRow(context.Background(), "income_statement", "AMD")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"symbol":     "AMD",
		"ebitda":     "5500000000",
		"net_income": "",
	}, row)
}

func TestPostgresLatestRow_NoRows(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM balance_sheet`).
		WithArgs("ZZZZ").
		WillReturnRows(pgxmock.NewRows([]string{"symbol"}))

	_, err := st.LatestRow(context.Background(), "balance_sheet", "ZZZZ")

	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestPostgresMigrate(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS overview`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, st.Migrate(context.Background()))
}
