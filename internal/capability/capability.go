// Package capability defines the named tool contracts the orchestrator
// can invoke, and the registry that catalogs them.
package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Capability is a named, independently invocable unit of tool behavior
// with a text-in/text-out contract. Run never returns a Go error: all
// failures are rendered as descriptive text so the orchestration loop can
// always continue.
type Capability struct {
	Name        string
	InputFormat string
	Description string
	Run         func(ctx context.Context, input string) string
}

// Registry is a fixed, insertion-ordered catalog of capabilities with
// unique names.
type Registry struct {
	ordered []*Capability
	byName  map[string]*Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Capability)}
}

// Register appends a capability. Names must be unique.
func (r *Registry) Register(c *Capability) error {
	if c.Name == "" {
		return eris.New("capability: empty name")
	}
	if _, exists := r.byName[c.Name]; exists {
		return eris.New(fmt.Sprintf("capability: duplicate name %s", c.Name))
	}
	r.ordered = append(r.ordered, c)
	r.byName[c.Name] = c
	return nil
}

// Get returns the capability with the given name (case-sensitive), or nil.
func (r *Registry) Get(name string) *Capability {
	return r.byName[name]
}

// Names returns the registered capability names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.ordered))
	for i, c := range r.ordered {
		out[i] = c.Name
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Describe renders the catalog for inclusion in the Think prompt: one
// block per capability with its input contract and description.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for _, c := range r.ordered {
		fmt.Fprintf(&sb, "- %s: %s Input format: %s\n", c.Name, c.Description, c.InputFormat)
	}
	return sb.String()
}
