package memory

import "sync"

// Manager owns one Memory per session ID. Sessions are created on first
// use; there is no eviction, callers that want a fresh history issue the
// reset command instead.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Memory
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Memory)}
}

// Get returns the Memory for sessionID, creating it if needed.
func (m *Manager) Get(sessionID string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.sessions[sessionID]
	if !ok {
		mem = New()
		m.sessions[sessionID] = mem
	}
	return mem
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
