// Package store provides the shared key-value store used as the transport
// between audio producers and the recognition worker pool. The only
// operations the transport needs are set-with-expiry, get, delete, exists
// and key scanning; KV captures exactly those so tests and single-process
// setups can swap the Redis client for an in-memory implementation.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key does not exist (or has expired).
var ErrNotFound = errors.New("key not found")

// KV is the store surface the transport core and the recognition workers
// operate on. Implementations must treat expired keys as absent.
type KV interface {
	// Set writes value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error
	// Exists reports whether key currently holds a value.
	Exists(ctx context.Context, key string) (bool, error)
	// Scan returns all live keys matching the glob pattern. Used by the
	// worker side of the contract to discover pending audio records.
	Scan(ctx context.Context, match string) ([]string, error)
}
