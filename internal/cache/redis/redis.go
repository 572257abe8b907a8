// Package redis provides a Redis-backed Cache adapter.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/icpkit/canisterenv/internal/cache"
)

// Store implements cache.Cache using Redis. Mappings are stored as JSON.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for cached mappings.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "canisterenv:ids:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Get returns the mapping for key, or cache.ErrMiss if absent.
func (s *Store) Get(ctx context.Context, key string) (map[string]string, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to decode cached mapping: %w", err)
	}

	return mapping, nil
}

// Set stores the mapping under key. A zero ttl means no expiration.
func (s *Store) Set(ctx context.Context, key string, mapping map[string]string, ttl time.Duration) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}
