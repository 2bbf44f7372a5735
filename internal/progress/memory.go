package progress

import (
	"context"
	"sync"
)

// MemoryStore is an in-process StateStore. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.Mutex
	state State
	saves int
}

func (m *MemoryStore) Load(_ context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Tasks = append([]Task(nil), m.state.Tasks...)
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Tasks = append([]Task(nil), s.Tasks...)
	m.state = s
	m.saves++
	return nil
}

// Saves returns the number of Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
