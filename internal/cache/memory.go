package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-process cache. Entries are dropped lazily on
// read once their TTL has passed.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory constructs an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Forget(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}
