package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]State
}

// NewMemoryStore returns a Store backed by a process-local map. Used in
// tests and when running without a database; state is lost on restart.
func NewMemoryStore() Store {
	return &memoryStore{sessions: map[string]State{}}
}

func (m *memoryStore) Get(ctx context.Context, sid string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[sid]
	if !ok {
		st = State{}
		st.normalize()
		return st, nil
	}
	return st.clone(), nil
}

func (m *memoryStore) Put(ctx context.Context, sid string, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = st.clone()
	return nil
}
