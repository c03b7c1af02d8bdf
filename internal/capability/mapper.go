package capability

import (
	"context"
	"fmt"

	"github.com/sells-group/stockagent/internal/mapping"
)

// NewFieldMapper builds the capability that reports which report sources
// contain each financial field. The input is ignored; the mapping is
// rebuilt from the corpus on every call.
func NewFieldMapper(ix *mapping.Index) *Capability {
	return &Capability{
		Name:        "FieldMapper",
		InputFormat: "(none)",
		Description: "Returns a mapping from financial field names to the report sources that contain them.",
		Run: func(ctx context.Context, _ string) string {
			m, err := ix.Build()
			if err != nil {
				return fmt.Sprintf("Field mapper error: %v", err)
			}
			return mapping.Render(m)
		},
	}
}
