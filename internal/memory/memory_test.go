package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/stockagent/internal/model"
)

func TestMemory_AppendAndClear(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "", m.Render())

	m.Append(model.RoleUser, "what is ebitda?")
	m.Append(model.RoleAssistant, "earnings before interest...")

	turns := m.Turns()
	assert.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "what is ebitda?", turns[0].Text)

	rendered := m.Render()
	assert.Contains(t, rendered, "user: what is ebitda?")
	assert.Contains(t, rendered, "assistant: earnings before interest...")

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "", m.Render())
}

func TestMemory_TurnsReturnsCopy(t *testing.T) {
	m := New()
	m.Append(model.RoleUser, "hello")

	turns := m.Turns()
	turns[0].Text = "mutated"

	assert.Equal(t, "hello", m.Turns()[0].Text)
}

func TestMemory_ConcurrentAppend(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Append(model.RoleTool, "observation")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	mgr := NewManager()

	a := mgr.Get("session-a")
	b := mgr.Get("session-b")
	a.Append(model.RoleUser, "only in a")

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 2, mgr.Len())

	// Same ID returns the same memory.
	assert.Same(t, a, mgr.Get("session-a"))
}
