package cart

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and single-node runs.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]map[string]Entry
	likes map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]map[string]Entry),
		likes: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) Get(_ context.Context, session, productID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.carts[session][productID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}

func (m *MemoryStore) Put(_ context.Context, session string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.carts[session] == nil {
		m.carts[session] = make(map[string]Entry)
	}
	m.carts[session][entry.Product.ID] = entry
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, session, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts[session], productID)
	return nil
}

func (m *MemoryStore) All(_ context.Context, session string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.carts[session]))
	for _, entry := range m.carts[session] {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m *MemoryStore) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, session)
	return nil
}

func (m *MemoryStore) ToggleLike(_ context.Context, session, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes[session] == nil {
		m.likes[session] = make(map[string]struct{})
	}
	if _, ok := m.likes[session][productID]; ok {
		delete(m.likes[session], productID)
		return false, nil
	}
	m.likes[session][productID] = struct{}{}
	return true, nil
}

func (m *MemoryStore) IsLiked(_ context.Context, session, productID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.likes[session][productID]
	return ok, nil
}

func (m *MemoryStore) Likes(_ context.Context, session string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.likes[session]))
	for id := range m.likes[session] {
		ids = append(ids, id)
	}
	return ids, nil
}
