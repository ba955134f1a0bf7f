package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. It is the default
// backend: sessions live as long as the process and a single replica
// serves them all.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]*State),
	}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if state, ok := m.states[sessionID]; ok {
		return state, nil
	}
	return &State{}, nil
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[sessionID] = state
	return nil
}

func (m *MemoryStore) HealthCheck(ctx context.Context) map[string]string {
	return map[string]string{"session_store": "healthy"}
}
