package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

// PairingCriteria selects complementary events for a reference event.
type PairingCriteria struct {
	City           string
	Date           time.Time
	Categories     []entities.EventCategory
	ExcludeEventID string
	Limit          int
}

// EventRepository defines the read interface for events
type EventRepository interface {
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*entities.Event, error)

	// GetPairingReference resolves an event together with its venue's city
	GetPairingReference(ctx context.Context, eventID string) (*entities.PairingReference, error)

	// FindPairings lists active events matching the pairing criteria
	FindPairings(ctx context.Context, criteria PairingCriteria) ([]*entities.Event, error)
}

// TrendingCriteria bounds the trending candidate query.
type TrendingCriteria struct {
	From   time.Time
	Window entities.WeekendWindow
	Limit  int
}

// TrendingRepository ranks upcoming events by popularity.
type TrendingRepository interface {
	// ListTrending returns at most criteria.Limit active events dated on or
	// after criteria.From with their save counts, ordered weekend events
	// first, then most saved, soonest, and by id.
	ListTrending(ctx context.Context, criteria TrendingCriteria) ([]*entities.TrendingEvent, error)
}
