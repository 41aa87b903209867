package session

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process session store. It backs tests
// and redis-less development; sessions vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = *s
	return nil
}

func (m *MemoryStore) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) SetError(_ context.Context, token, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[token]
	s.Token = token
	s.Error = msg
	m.sessions[token] = s
	return nil
}

func (m *MemoryStore) PopError(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.Error == "" {
		return "", nil
	}
	msg := s.Error
	s.Error = ""
	m.sessions[token] = s
	return msg, nil
}
