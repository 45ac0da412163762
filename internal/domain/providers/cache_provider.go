package providers

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Get when the key is absent. Any other error
// means the cache store itself failed.
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is the read-through store behind search results and
// geocode lookups. Entries only leave by TTL expiry.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
}
