package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuild_FieldInMultipleSources(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "AAPL_OVERVIEW.txt", `"sector": "Tech"`)
	writeCorpusFile(t, dir, "AAPL_CASH_FLOW.txt", `"sector": "Finance"`)

	ix := NewIndex(dir)
	m, err := ix.Build()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"overview", "cash_flow"}, m.Sources("sector"))
}

func TestBuild_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "AAPL_OVERVIEW.txt", "\"sector\": \"Tech\"\n\"industry\": \"Hardware\"\n")
	writeCorpusFile(t, dir, "AAPL_INCOME_STATEMENT.txt", "\"ebitda\": \"500\"\n")

	ix := NewIndex(dir)
	first, err := ix.Build()
	require.NoError(t, err)
	second, err := ix.Build()
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestBuild_SkipsUnmatchedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "notes.txt", `"sector": "Tech"`)
	writeCorpusFile(t, dir, "AAPL_OVERVIEW.md", `"sector": "Tech"`)
	writeCorpusFile(t, dir, "AAPL_BALANCE_SHEET.txt", `"total_assets": "100"`)

	ix := NewIndex(dir)
	m, err := ix.Build()
	require.NoError(t, err)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"balance_sheet"}, m.Sources("total_assets"))
}

func TestBuild_FieldParsing(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "amd_income_statement.txt",
		"\"EBITDA\": \"500\",\nno colon on this line\n  \"Net_Income\" : \"100\",\n: leading colon\n")

	ix := NewIndex(dir)
	m, err := ix.Build()
	require.NoError(t, err)

	// Keys are lower-cased and trimmed of quotes and commas; only the
	// first colon delimits.
	assert.Equal(t, []string{"income_statement"}, m.Sources("ebitda"))
	assert.Equal(t, []string{"income_statement"}, m.Sources("net_income"))
	assert.Nil(t, m.Sources("no colon on this line"))
}

func TestBuild_MissingDir(t *testing.T) {
	ix := NewIndex(filepath.Join(t.TempDir(), "absent"))
	_, err := ix.Build()
	assert.Error(t, err)
}

func TestSourceTagFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"AAPL_OVERVIEW.txt", "overview"},
		{"aapl_overview.txt", "overview"},
		{"MSFT_INCOME_STATEMENT.txt", "income_statement"},
		{"msft_balance_sheet.txt", "balance_sheet"},
		{"NVDA_CASH_FLOW.txt", "cash_flow"},
		{"random.txt", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sourceTagFor(tt.name), tt.name)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "AAPL_OVERVIEW.txt", `"sector": "Tech"`)

	ix := NewIndex(dir)
	m, err := ix.Build()
	require.NoError(t, err)

	out := Render(m)
	assert.Contains(t, out, "sector")
	assert.Contains(t, out, "overview")

	empty, err := NewIndex(t.TempDir()).Build()
	require.NoError(t, err)
	assert.Equal(t, "No field mappings found.", Render(empty))
}
