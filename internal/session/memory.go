package session

import (
	"context"
	"sync"
	"time"

	"car-leasing/internal/model"
)

type memoryEntry struct {
	order     model.LastOrder
	expiresAt time.Time
}

// MemoryStore is a process-local Store with per-entry expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (*model.LastOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sid]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, nil
	}

	order := entry.order
	return &order, nil
}

func (s *MemoryStore) Put(_ context.Context, sid string, order model.LastOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sid] = memoryEntry{
		order:     order,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Sweep evicts expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for sid, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, sid)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
