package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store in memory. Intended for tests and the
// development stub environment.
type MemoryStore struct {
	mu   sync.RWMutex
	sess Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess, nil
}

func (m *MemoryStore) SetToken(ctx context.Context, token, email, name string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if name == "" {
		name = DisplayNameFromEmail(email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{Token: token, Email: email, Name: name}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{}
	return nil
}
