package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
)

const (
	searchCacheKeyPrefix = "venues:search:"

	// DefaultSearchCacheTTL is how long a search page is served from cache (seconds).
	DefaultSearchCacheTTL = 300
)

// cachedSearchResult is the stored payload. Limit and offset are part of the key.
type cachedSearchResult struct {
	TotalCount int                            `json:"total_count"`
	Rows       []entities.CompositeResultRow `json:"rows"`
}

// CachedSearchAdapter wraps a VenueSearcher with read-through caching
type CachedSearchAdapter struct {
	searcher   repositories.VenueSearcher
	cache      providers.CacheProvider
	ttlSeconds int
}

// NewCachedSearchAdapter creates a new cached search adapter. A non-positive
// ttl falls back to DefaultSearchCacheTTL.
func NewCachedSearchAdapter(searcher repositories.VenueSearcher, cache providers.CacheProvider, ttlSeconds int) *CachedSearchAdapter {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultSearchCacheTTL
	}
	return &CachedSearchAdapter{
		searcher:   searcher,
		cache:      cache,
		ttlSeconds: ttlSeconds,
	}
}

// SearchCacheKey derives the cache key for a normalized query.
func SearchCacheKey(query entities.SearchQuery) (string, error) {
	payload, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return searchCacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// Search serves the page from cache when present. Otherwise it runs the
// wrapped searcher and stores the result before returning. Cache failures
// never fail the search.
func (a *CachedSearchAdapter) Search(ctx context.Context, query entities.SearchQuery, location entities.LocationFilter) (*entities.SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "CachedSearchAdapter.Search")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	key, keyErr := SearchCacheKey(query)
	if keyErr != nil {
		logger.Warn().Err(keyErr).Msg("failed to derive search cache key")
		observability.RecordCacheError("key")
	}

	if keyErr == nil {
		if result, ok := a.lookup(ctx, key, query); ok {
			observability.SetSpanAttributes(span, attribute.Bool("cache.hit", true))
			return result, nil
		}
	}
	observability.SetSpanAttributes(span, attribute.Bool("cache.hit", false))

	result, err := a.searcher.Search(ctx, query, location)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if keyErr == nil {
		a.store(ctx, key, result)
	}

	return result, nil
}

func (a *CachedSearchAdapter) lookup(ctx context.Context, key string, query entities.SearchQuery) (*entities.SearchResult, bool) {
	logger := observability.LoggerFromContext(ctx)

	data, err := a.cache.Get(ctx, key)
	if errors.Is(err, providers.ErrCacheMiss) {
		observability.RecordCacheMiss()
		return nil, false
	}
	if err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("search cache read failed")
		observability.RecordCacheError("get")
		return nil, false
	}

	var cached cachedSearchResult
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("failed to decode cached search result")
		observability.RecordCacheError("decode")
		return nil, false
	}

	observability.RecordCacheHit()
	result := entities.EmptySearchResult(query.Limit, query.Offset)
	result.TotalCount = cached.TotalCount
	if cached.Rows != nil {
		result.Rows = cached.Rows
	}
	return result, true
}

func (a *CachedSearchAdapter) store(ctx context.Context, key string, result *entities.SearchResult) {
	logger := observability.LoggerFromContext(ctx)

	data, err := json.Marshal(cachedSearchResult{
		TotalCount: result.TotalCount,
		Rows:       result.Rows,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode search result for cache")
		observability.RecordCacheError("encode")
		return
	}

	if err := a.cache.Set(ctx, key, data, a.ttlSeconds); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("search cache write failed")
		observability.RecordCacheError("set")
		return
	}
	observability.RecordCacheWrite()
}
