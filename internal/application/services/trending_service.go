package services

import (
	"context"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/pkg/clock"
)

// TrendingLimit is the size of the trending feed.
const TrendingLimit = 10

// TrendingService ranks upcoming events for the "what's hot" feed
type TrendingService struct {
	trending repositories.TrendingRepository
	clock    clock.Clock
}

// NewTrendingService creates a new trending service
func NewTrendingService(trending repositories.TrendingRepository, clk clock.Clock) *TrendingService {
	return &TrendingService{
		trending: trending,
		clock:    clk,
	}
}

// Trending returns the top upcoming events, weekend events first.
func (s *TrendingService) Trending(ctx context.Context) (*entities.TrendingFeed, error) {
	today := clock.StartOfDay(s.clock.Now())
	window := UpcomingWeekend(today)

	candidates, err := s.trending.ListTrending(ctx, repositories.TrendingCriteria{
		From:   today,
		Window: window,
		Limit:  TrendingLimit,
	})
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		c.InWeekendWindow = window.Contains(c.Event.Date)
	}
	RankTrending(candidates)

	if len(candidates) > TrendingLimit {
		candidates = candidates[:TrendingLimit]
	}

	feed := &entities.TrendingFeed{
		Window: window,
		Events: candidates,
	}
	if feed.Events == nil {
		feed.Events = []*entities.TrendingEvent{}
	}
	return feed, nil
}
