package ports

import (
	"context"
	"time"
)

// Store is an expiring key-value store holding serialized challenges.
// Each operation is individually atomic; no transaction spans them.
type Store interface {
	// Set stores a value under key, evicted automatically after ttl
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves a value by key; returns core.ErrChallengeNotFound
	// when the key is absent or expired
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key and reports whether it was present
	Delete(ctx context.Context, key string) (bool, error)
}
