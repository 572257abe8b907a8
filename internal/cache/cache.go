// Package cache defines the port for caching resolved canister mappings.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is not present (or has expired).
var ErrMiss = errors.New("cache miss")

// Cache stores canister name -> ID mappings keyed by network.
// Implementations must treat entries as immutable snapshots.
type Cache interface {
	Get(ctx context.Context, key string) (map[string]string, error)
	Set(ctx context.Context, key string, mapping map[string]string, ttl time.Duration) error
}
