package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/clickcha/core"
	"github.com/layer-3/clickcha/ports"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the Store interface.
// This is primarily intended for testing purposes. Expired entries are
// evicted lazily on read.
type MemoryStore struct {
	data map[string]entry
	mu   sync.Mutex

	// now is swappable so tests can step time past a TTL.
	now func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Set stores a value with an expiration time
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get retrieves a value by key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return "", core.ErrChallengeNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, key)
		return "", core.ErrChallengeNotFound
	}
	return e.value, nil
}

// Delete removes a key and reports whether it existed
func (s *MemoryStore) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return false, nil
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

// SetClock replaces the store's time source. Test helper.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

var _ ports.Store = (*MemoryStore)(nil)
