package cache

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

// BreakerSettings tunes the cache circuit breaker.
type BreakerSettings struct {
	Name string
	// MinRequests is the sample size needed before the failure ratio can trip the breaker.
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

// DefaultBreakerSettings returns the settings used for the search cache.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "search-cache",
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// BreakerCache guards a CacheProvider with a circuit breaker. While the
// breaker is open every call fails fast with a cache-unavailable error.
type BreakerCache struct {
	next providers.CacheProvider
	cb   *gobreaker.CircuitBreaker[[]byte]
}

// NewBreakerCache wraps next with a circuit breaker
func NewBreakerCache(next providers.CacheProvider, settings BreakerSettings) *BreakerCache {
	observability.CircuitBreakerState.WithLabelValues(settings.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		// a miss is a healthy answer from the store, and a request the caller
		// abandoned says nothing about redis
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, providers.ErrCacheMiss) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.GetLogger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("cache circuit breaker state change")
			observability.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &BreakerCache{next: next, cb: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// State returns the current breaker state
func (b *BreakerCache) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerCache) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperrors.NewCacheUnavailableError("cache circuit open", err)
	}
	return result, err
}

// Get retrieves a value through the breaker
func (b *BreakerCache) Get(ctx context.Context, key string) ([]byte, error) {
	return b.execute(func() ([]byte, error) {
		return b.next.Get(ctx, key)
	})
}

// Set stores a value through the breaker
func (b *BreakerCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	_, err := b.execute(func() ([]byte, error) {
		return nil, b.next.Set(ctx, key, value, expirationSeconds)
	})
	return err
}
