// Package mapping builds the field-to-source index from a corpus of
// report documents.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/stockagent/internal/model"
)

// sourceTags pairs report-type keywords with the source tag recorded in
// the mapping. The keyword is matched case-insensitively against the file
// name; OVERVIEW is checked last so the statement names win when a file
// name carries both.
var sourceTags = []struct {
	keyword string
	tag     string
}{
	{"INCOME_STATEMENT", "income_statement"},
	{"BALANCE_SHEET", "balance_sheet"},
	{"CASH_FLOW", "cash_flow"},
	{"OVERVIEW", "overview"},
}

// Index builds field mappings from a corpus directory.
type Index struct {
	dir string
}

// NewIndex creates an Index over the given corpus directory.
func NewIndex(dir string) *Index {
	return &Index{dir: dir}
}

// Build scans every .txt document in the corpus directory and returns the
// field-to-source mapping. Files whose name matches no report keyword are
// skipped; per-file read errors are logged and do not abort the scan.
// Building twice over an unchanged corpus yields an equal mapping.
func (ix *Index) Build() (*model.FieldMapping, error) {
	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "mapping: read corpus dir %s", ix.dir)
	}

	m := model.NewFieldMapping()
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		tag := sourceTagFor(entry.Name())
		if tag == "" {
			continue
		}

		path := filepath.Join(ix.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			zap.L().Warn("mapping: skipping unreadable corpus file",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			field := fieldName(line)
			if field != "" {
				m.Add(field, tag)
			}
		}
	}
	return m, nil
}

// sourceTagFor returns the source tag for a corpus file name, or "" when
// no report keyword matches.
func sourceTagFor(name string) string {
	upper := strings.ToUpper(name)
	for _, st := range sourceTags {
		if strings.Contains(upper, st.keyword) {
			return st.tag
		}
	}
	return ""
}

// fieldName extracts the field name from a `field: value` line. The first
// colon is the delimiter; the left side is trimmed of quotes, commas and
// whitespace and lower-cased. Lines without a colon yield "".
func fieldName(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(line[:idx]), `",`))
}

// Render formats a mapping as aligned `field -> sources` lines for
// display to the model or an operator.
func Render(m *model.FieldMapping) string {
	fields := m.Fields()
	if len(fields) == 0 {
		return "No field mappings found."
	}
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, "%-30s -> %s\n", f, strings.Join(m.Sources(f), ", "))
	}
	return sb.String()
}
