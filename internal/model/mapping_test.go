package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMapping_AddAndSources(t *testing.T) {
	m := NewFieldMapping()
	m.Add("sector", "overview")
	m.Add("sector", "cash_flow")
	m.Add("sector", "overview") // duplicate suppressed
	m.Add("ebitda", "income_statement")
	m.Add("", "overview")
	m.Add("sector", "")

	assert.Equal(t, []string{"cash_flow", "overview"}, m.Sources("sector"))
	assert.Equal(t, []string{"income_statement"}, m.Sources("ebitda"))
	assert.Nil(t, m.Sources("missing"))
	assert.Equal(t, []string{"ebitda", "sector"}, m.Fields())
	assert.Equal(t, 2, m.Len())
}

func TestFieldMapping_Equal(t *testing.T) {
	a := NewFieldMapping()
	a.Add("sector", "overview")
	a.Add("sector", "cash_flow")

	b := NewFieldMapping()
	b.Add("sector", "cash_flow")
	b.Add("sector", "overview")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	b.Add("ebitda", "income_statement")
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(nil))
}
