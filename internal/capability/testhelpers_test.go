package capability

import (
	"context"

	"github.com/sells-group/stockagent/internal/store"
	"github.com/sells-group/stockagent/pkg/alphavantage"
	"github.com/sells-group/stockagent/pkg/llm"
)

// fakeAlpha is a scripted alphavantage.Client.
type fakeAlpha struct {
	payload  map[string]any
	stmt     *alphavantage.IncomeStatement
	err      error
	fetches  int
	lastFunc string
}

func (f *fakeAlpha) Fetch(_ context.Context, _, function string) (map[string]any, error) {
	f.fetches++
	f.lastFunc = function
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeAlpha) FetchIncomeStatement(_ context.Context, _ string) (*alphavantage.IncomeStatement, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.stmt, nil
}

// fakeStore is a scripted store.Store.
type fakeStore struct {
	value string
	row   map[string]string
	err   error
}

func (f *fakeStore) LatestFieldValue(_ context.Context, _, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.value, nil
}

func (f *fakeStore) LatestRow(_ context.Context, _, _ string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.row, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

var _ store.Store = (*fakeStore)(nil)

// fakeLLM replies with a fixed string.
type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(context.Context, string, []llm.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
