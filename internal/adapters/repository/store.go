// Package repository provides the persistent key/value slot used for user
// preferences such as the favorite team.
package repository

import "context"

// KV is a string key/value store that survives process restarts.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases underlying resources.
	Close() error
}

// New opens a SQLite store at path, or an in-memory store when path is empty.
func New(ctx context.Context, path string, opts ...Option) (KV, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return NewSQLiteStore(ctx, path, opts...)
}
