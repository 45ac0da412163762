package providers

import (
	"context"
)

// GeolocationProvider resolves free text into coordinates. It is an
// external collaborator; the search core never geocodes on its own.
type GeolocationProvider interface {
	// Geocode converts an address to coordinates
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
