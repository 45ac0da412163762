package cache

import (
	"context"

	"github.com/zatekoja/venuediscovery/internal/domain/providers"
)

// NoopCache never stores anything. Every Get is a miss, so searches always
// reach the datastore. Used when Redis is disabled.
type NoopCache struct{}

// NewNoopCache creates a cache that always misses
func NewNoopCache() providers.CacheProvider {
	return NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, providers.ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return nil
}
