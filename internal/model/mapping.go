package model

import "sort"

// FieldMapping maps a lower-cased financial field name to the set of
// report-type sources the field was observed in. A field maps to every
// source it ever appeared in; no source is duplicated per field.
type FieldMapping struct {
	sources map[string]map[string]struct{}
}

// NewFieldMapping creates an empty FieldMapping.
func NewFieldMapping() *FieldMapping {
	return &FieldMapping{sources: make(map[string]map[string]struct{})}
}

// Add records that field appears in source. Duplicate (field, source)
// pairs are suppressed.
func (m *FieldMapping) Add(field, source string) {
	if field == "" || source == "" {
		return
	}
	set, ok := m.sources[field]
	if !ok {
		set = make(map[string]struct{})
		m.sources[field] = set
	}
	set[source] = struct{}{}
}

// Sources returns the sorted set of sources known to contain field.
func (m *FieldMapping) Sources(field string) []string {
	set, ok := m.sources[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Fields returns all mapped field names in sorted order.
func (m *FieldMapping) Fields() []string {
	out := make([]string, 0, len(m.sources))
	for f := range m.sources {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct mapped fields.
func (m *FieldMapping) Len() int {
	return len(m.sources)
}

// Equal reports whether two mappings contain the same (field, source) pairs.
func (m *FieldMapping) Equal(other *FieldMapping) bool {
	if other == nil || len(m.sources) != len(other.sources) {
		return false
	}
	for field, set := range m.sources {
		oset, ok := other.sources[field]
		if !ok || len(set) != len(oset) {
			return false
		}
		for s := range set {
			if _, ok := oset[s]; !ok {
				return false
			}
		}
	}
	return true
}
