package repositories

import (
	"context"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

// VenueRepository defines the read interface for venues
type VenueRepository interface {
	// GetByID retrieves a venue by ID
	GetByID(ctx context.Context, id string) (*entities.Venue, error)

	// GetByIDs retrieves venues by IDs; missing IDs are skipped
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Venue, error)

	// GetOwnership resolves a venue's owner and subscription tier
	GetOwnership(ctx context.Context, venueID string) (*entities.VenueOwnership, error)
}
