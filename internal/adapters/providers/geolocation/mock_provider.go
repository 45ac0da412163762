package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

// mockCities holds fixed coordinates for a handful of US cities, keyed by
// lowercase city name.
var mockCities = map[string]providers.Coordinates{
	"new york":    {Latitude: 40.7128, Longitude: -74.0060},
	"los angeles": {Latitude: 34.0522, Longitude: -118.2437},
	"chicago":     {Latitude: 41.8781, Longitude: -87.6298},
	"houston":     {Latitude: 29.7604, Longitude: -95.3698},
	"phoenix":     {Latitude: 33.4484, Longitude: -112.0740},
	"austin":      {Latitude: 30.2672, Longitude: -97.7431},
	"nashville":   {Latitude: 36.1627, Longitude: -86.7816},
	"new orleans": {Latitude: 29.9511, Longitude: -90.0715},
	"denver":      {Latitude: 39.7392, Longitude: -104.9903},
	"seattle":     {Latitude: 47.6062, Longitude: -122.3321},
}

// MockGeolocationProvider resolves addresses that mention a known city
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode returns the coordinates of the first known city contained in the
// address. Unknown addresses are NotFound.
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	// longest match wins
	var best string
	for city := range mockCities {
		if strings.Contains(normalized, city) && len(city) > len(best) {
			best = city
		}
	}
	if best == "" {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no results for address %q", address))
	}

	coords := mockCities[best]
	return &coords, nil
}
