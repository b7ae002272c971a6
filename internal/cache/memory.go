package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   string
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process Store. Used by tests and as a
// fallback when Redis is not configured.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.m[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.payload, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, payload string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.m[key] = entry
	return nil
}
