// Package cache provides the metadata cache used during analysis runs.
//
// Resolved registry metadata is keyed by "<ecosystem>:<normalized-name>" so
// that identically named packages in different ecosystems never collide.
// Registries are treated as append-only for a given version, so entries are
// never invalidated; a backend's TTL only bounds staleness of the
// latest-version fields.
//
// The default backend is an in-memory cache owned by a single analysis run.
// A Redis backend is available for sharing resolved metadata across runs or
// processes.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for resolved package metadata.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the backend.
	Close() error
}

// Key builds the canonical cache key for a package in an ecosystem.
func Key(ecosystem, name string) string {
	return ecosystem + ":" + name
}
