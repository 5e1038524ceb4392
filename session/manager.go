package session

import "sync"

// StorageFactory builds the durable storage for one client-session namespace
type StorageFactory func(namespace string) Storage

// Manager hands out one Store per client session. A store is created and
// initialized exactly once, on first request for its ID, before it is
// returned — callers never observe an uninitialized store.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	factory StorageFactory
}

// NewManager creates a session manager backed by the given storage factory
func NewManager(factory StorageFactory) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		factory: factory,
	}
}

// For returns the store for a client-session ID, creating and initializing
// it on first use.
func (m *Manager) For(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store := New(m.factory(sessionID))
	store.Initialize()
	m.stores[sessionID] = store
	return store
}
