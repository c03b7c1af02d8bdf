// Package memory holds per-session conversation history consulted by the
// agent across turns.
package memory

import (
	"strings"
	"sync"

	"github.com/sells-group/stockagent/internal/model"
)

// Memory is an ordered, append-only record of conversation turns for one
// session. Clear resets it in place.
type Memory struct {
	// loopMu serializes whole routing passes over this session; mu only
	// guards individual turn operations.
	loopMu sync.Mutex
	mu     sync.Mutex
	turns  []model.Turn
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{}
}

// Acquire blocks until the caller holds exclusive use of this session
// for a full routing pass. Release must be called when the pass ends.
func (m *Memory) Acquire() {
	m.loopMu.Lock()
}

// Release ends the exclusive use started by Acquire.
func (m *Memory) Release() {
	m.loopMu.Unlock()
}

// Append adds a turn to the history.
func (m *Memory) Append(role model.Role, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, model.Turn{Role: role, Text: text})
}

// Turns returns a copy of the recorded history.
func (m *Memory) Turns() []model.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Clear removes all recorded turns.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}

// Render formats the history as role-prefixed lines for prompt inclusion.
// Returns the empty string when the history is empty.
func (m *Memory) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.turns) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range m.turns {
		sb.WriteString(string(t.Role))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
