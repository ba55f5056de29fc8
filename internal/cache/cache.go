// Package cache provides the location cache collaborator used by the
// coordinate resolver. Entries are opaque bytes keyed by (hint kind, hint
// value) and evicted purely by TTL.
package cache

import (
	"context"
	"time"
)

// Store is a read-through TTL cache.
type Store interface {
	// Get returns the cached value for key, or false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Clear drops every entry.
	Clear(ctx context.Context)
}
