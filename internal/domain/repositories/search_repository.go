package repositories

import (
	"context"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

// VenueSearcher executes a ranked, paginated venue search. Both the
// datastore executor and its caching decorator implement it.
type VenueSearcher interface {
	Search(ctx context.Context, query entities.SearchQuery, location entities.LocationFilter) (*entities.SearchResult, error)
}
