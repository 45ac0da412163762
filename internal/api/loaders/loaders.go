package loaders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the per-request dataloaders
type Loaders struct {
	VenueLoader *dataloader.Loader[string, *entities.Venue]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(venueRepo repositories.VenueRepository) *Loaders {
	return &Loaders{
		VenueLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Venue] {
			results := make([]*dataloader.Result[*entities.Venue], len(keys))
			venues, err := venueRepo.GetByIDs(ctx, keys)

			venueMap := make(map[string]*entities.Venue, len(venues))
			if err == nil {
				for _, v := range venues {
					venueMap[v.ID] = v
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Venue]{Error: err}
				} else if v, ok := venueMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Venue]{Data: v}
				} else {
					results[i] = &dataloader.Result[*entities.Venue]{Error: apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))}
				}
			}
			return results
		}),
	}
}

// For returns the loaders attached to ctx, or nil when none are
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// Middleware attaches fresh loaders to every request so batching and
// memoization never leak across requests.
func Middleware(venueRepo repositories.VenueRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(venueRepo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadVenues resolves venues for the given IDs in one batch. The result maps
// venue ID to venue; IDs that fail to load are left out.
func LoadVenues(ctx context.Context, ids []string) (map[string]*entities.Venue, error) {
	venues := make(map[string]*entities.Venue, len(ids))
	l := For(ctx)
	if l == nil {
		return nil, apperrors.NewInternalError("venue loader missing from request context", nil)
	}
	if len(ids) == 0 {
		return venues, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	loaded, errs := l.VenueLoader.LoadMany(ctx, unique)()
	for i, id := range unique {
		if i < len(errs) && errs[i] != nil {
			if apperrors.IsType(errs[i], apperrors.ErrorTypeNotFound) {
				continue
			}
			return nil, errs[i]
		}
		if i < len(loaded) && loaded[i] != nil {
			venues[id] = loaded[i]
		}
	}
	return venues, nil
}
