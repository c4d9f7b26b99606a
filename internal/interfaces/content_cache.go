package interfaces

import (
	"context"
	"time"
)

// ContentCache is the key/value cache fronting resolved prompt content.
// Single-key operations are atomic; entries are either absent, fresh from
// the store, or expired.
type ContentCache interface {
	// Get returns the cached value, or models.ErrCacheMiss when the key is
	// absent or expired. Any other error is a transport failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
