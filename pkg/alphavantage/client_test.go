package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Symbol":"AAPL","Name":"Apple Inc","Sector":"Technology"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Fetch(context.Background(), "AAPL", "OVERVIEW")

	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", got["Name"])
	assert.Equal(t, "Technology", got["Sector"])
}

func TestFetch_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Fetch(context.Background(), "AAPL", "OVERVIEW")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetch_BadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Fetch(context.Background(), "AAPL", "OVERVIEW")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetchIncomeStatement(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "INCOME_STATEMENT", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"symbol": "AMD",
			"annualReports": [
				{"fiscalDateEnding": "2025-12-31", "ebitda": "500"},
				{"fiscalDateEnding": "2024-12-31", "ebitda": "400"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	stmt, err := client.FetchIncomeStatement(context.Background(), "AMD")

	require.NoError(t, err)
	assert.Equal(t, "AMD", stmt.Symbol)
	require.NotNil(t, stmt.LatestAnnual())
	assert.Equal(t, "500", stmt.LatestAnnual()["ebitda"])
}

func TestLatestAnnual_Empty(t *testing.T) {
	t.Parallel()

	var stmt *IncomeStatement
	assert.Nil(t, stmt.LatestAnnual())
	assert.Nil(t, (&IncomeStatement{}).LatestAnnual())
}

func TestIsValidFunction(t *testing.T) {
	t.Parallel()

	for _, f := range Functions {
		assert.True(t, IsValidFunction(f))
	}
	assert.False(t, IsValidFunction("FOO"))
	assert.False(t, IsValidFunction("overview"))
}
