package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type memoryEntry struct {
	authenticated bool
	count         int
}

// MemoryStore keeps sessions in process memory. Entries never expire.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	logger   *zap.Logger
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		logger:   logger.Named("memory_store"),
	}
}

// entry returns the entry for id, creating it. Callers hold m.mu.
func (m *MemoryStore) entry(sessionID string) *memoryEntry {
	e, ok := m.sessions[sessionID]
	if !ok {
		e = &memoryEntry{}
		m.sessions[sessionID] = e
	}
	return e
}

func (m *MemoryStore) Create(ctx context.Context) (string, error) {
	id := NewID()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = &memoryEntry{}
	m.logger.Debug("Created session", zap.String("session_id", id))
	return id, nil
}

func (m *MemoryStore) SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entry(sessionID).authenticated = authenticated
	return nil
}

func (m *MemoryStore) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	return e.authenticated, nil
}

func (m *MemoryStore) Count(ctx context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return 0, nil
	}
	return e.count, nil
}

func (m *MemoryStore) IncrementCount(ctx context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entry(sessionID)
	e.count++
	return e.count, nil
}

func (m *MemoryStore) SetCount(ctx context.Context, sessionID string, count int) error {
	if count < 0 {
		return ErrNegativeCount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entry(sessionID).count = count
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of tracked sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
