// Package memory provides an in-process Cache adapter.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/icpkit/canisterenv/internal/cache"
)

type entry struct {
	mapping   map[string]string
	expiresAt time.Time
}

// Store implements cache.Cache with a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty in-memory cache.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the mapping for key, or cache.ErrMiss if absent or expired.
func (s *Store) Get(ctx context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, cache.ErrMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, cache.ErrMiss
	}

	// Copy out so callers cannot mutate the cached snapshot.
	return maps.Clone(e.mapping), nil
}

// Set stores the mapping under key. A zero ttl means no expiration.
func (s *Store) Set(ctx context.Context, key string, mapping map[string]string, ttl time.Duration) error {
	e := entry{mapping: maps.Clone(mapping)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()

	return nil
}
