package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

const (
	googleGeocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	geocodeCacheKeyPrefix = "venues:geocode:"
	geocodeCacheTTL       = 60 * 60 * 24 * 30
	httpTimeout           = 8 * time.Second
)

// GoogleGeolocationProvider geocodes addresses with the Google Geocoding API.
// Results are cached for thirty days when a cache is supplied.
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider.
func NewGoogleGeolocationProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewGoogleGeolocationProviderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeolocationProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleGeolocationProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpTimeout}
	}
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode resolves a US address to coordinates. Lookups are restricted to
// the US because every venue is.
func (g *GoogleGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	ctx, span := observability.StartSpan(ctx, "geolocation.Geocode")
	defer span.End()

	cacheKey := geocodeCacheKeyPrefix + hashKey(strings.ToLower(trimmed))
	if coords, ok := g.cached(ctx, cacheKey); ok {
		span.SetAttributes(attribute.Bool("geocode.cache_hit", true))
		return coords, nil
	}

	resp, err := g.doGeocodeRequest(ctx, url.Values{
		"address":    []string{trimmed},
		"components": []string{"country:US"},
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no results for address %q", trimmed))
	}

	location := resp.Results[0].Geometry.Location
	coords := &providers.Coordinates{Latitude: location.Lat, Longitude: location.Lng}
	g.store(ctx, cacheKey, coords)
	return coords, nil
}

func (g *GoogleGeolocationProvider) cached(ctx context.Context, key string) (*providers.Coordinates, bool) {
	if g.cache == nil {
		return nil, false
	}
	raw, err := g.cache.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var coords providers.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil, false
	}
	return &coords, true
}

func (g *GoogleGeolocationProvider) store(ctx context.Context, key string, coords *providers.Coordinates) {
	if g.cache == nil {
		return
	}
	payload, err := json.Marshal(coords)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, payload, geocodeCacheTTL); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache geocode result")
	}
}

func (g *GoogleGeolocationProvider) doGeocodeRequest(ctx context.Context, params url.Values) (*googleGeocodeResponse, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewExternalError("google maps api key is required", nil)
	}

	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to build geocode request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("geocode request returned status %d", resp.StatusCode), nil)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	switch payload.Status {
	case "OK":
		return &payload, nil
	case "ZERO_RESULTS":
		payload.Results = nil
		return &payload, nil
	case "INVALID_REQUEST":
		return nil, apperrors.NewValidationError("address could not be geocoded")
	}
	msg := "geocode request failed: " + payload.Status
	if payload.ErrorMessage != "" {
		msg += " - " + payload.ErrorMessage
	}
	return nil, apperrors.NewExternalError(msg, nil)
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
