// Package alphavantage provides a client for the Alpha Vantage market-data API.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Function names accepted by the query endpoint.
const (
	FuncOverview        = "OVERVIEW"
	FuncIncomeStatement = "INCOME_STATEMENT"
	FuncBalanceSheet    = "BALANCE_SHEET"
	FuncCashFlow        = "CASH_FLOW"
)

// Functions lists the supported report functions in a fixed order.
var Functions = []string{FuncOverview, FuncIncomeStatement, FuncBalanceSheet, FuncCashFlow}

// IsValidFunction reports whether name is a supported report function.
func IsValidFunction(name string) bool {
	for _, f := range Functions {
		if f == name {
			return true
		}
	}
	return false
}

// Client defines the Alpha Vantage operations used by the agent.
type Client interface {
	// Fetch queries the given function for a symbol and returns the
	// decoded JSON payload.
	Fetch(ctx context.Context, symbol, function string) (map[string]any, error)

	// FetchIncomeStatement queries INCOME_STATEMENT for a symbol and
	// returns the parsed report.
	FetchIncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error)
}

// IncomeStatement is the parsed INCOME_STATEMENT payload. Report values
// stay as strings, matching the wire format.
type IncomeStatement struct {
	Symbol           string              `json:"symbol"`
	AnnualReports    []map[string]string `json:"annualReports"`
	QuarterlyReports []map[string]string `json:"quarterlyReports"`
}

// LatestAnnual returns the most recent annual report entry, or nil if the
// payload carried none.
func (s *IncomeStatement) LatestAnnual() map[string]string {
	if s == nil || len(s.AnnualReports) == 0 {
		return nil
	}
	return s.AnnualReports[0]
}

// Option configures the Alpha Vantage client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Alpha Vantage client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://www.alphavantage.co/query",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Fetch(ctx context.Context, symbol, function string) (map[string]any, error) {
	body, err := c.get(ctx, symbol, function)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "alphavantage: decode response")
	}
	return payload, nil
}

func (c *httpClient) FetchIncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error) {
	body, err := c.get(ctx, symbol, FuncIncomeStatement)
	if err != nil {
		return nil, err
	}

	var stmt IncomeStatement
	if err := json.Unmarshal(body, &stmt); err != nil {
		return nil, eris.Wrap(err, "alphavantage: decode income statement")
	}
	return &stmt, nil
}

func (c *httpClient) get(ctx context.Context, symbol, function string) ([]byte, error) {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "alphavantage: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "alphavantage: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.New(fmt.Sprintf("alphavantage: status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "alphavantage: read body")
	}
	return body, nil
}
