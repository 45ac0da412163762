package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/venuediscovery/internal/application/services"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/pkg/clock"
)

func candidate(id, day string, saves int) *entities.TrendingEvent {
	return &entities.TrendingEvent{Event: &entities.Event{ID: id, Date: date(day)}, SaveCount: saves}
}

func TestTrendingService_AsksForBoundedWeekendRankedPage(t *testing.T) {
	trending := new(MockTrendingRepository)
	wednesday := time.Date(2026, 10, 21, 14, 30, 0, 0, time.UTC)
	svc := services.NewTrendingService(trending, clock.NewFixed(wednesday))

	trending.On("ListTrending", mock.Anything, repositories.TrendingCriteria{
		From:   date("2026-10-21"),
		Window: entities.WeekendWindow{Start: date("2026-10-23"), End: date("2026-10-25")},
		Limit:  services.TrendingLimit,
	}).Return([]*entities.TrendingEvent{}, nil)

	feed, err := svc.Trending(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, feed.Events)
	assert.Empty(t, feed.Events)
	assert.Equal(t, date("2026-10-23"), feed.Window.Start)
	assert.Equal(t, date("2026-10-25"), feed.Window.End)
	trending.AssertExpectations(t)
}

func TestTrendingService_WeekendEventOutranksMoreSavedWeekdayEvent(t *testing.T) {
	trending := new(MockTrendingRepository)
	wednesday := time.Date(2026, 10, 21, 14, 30, 0, 0, time.UTC)
	svc := services.NewTrendingService(trending, clock.NewFixed(wednesday))

	trending.On("ListTrending", mock.Anything, mock.Anything).Return([]*entities.TrendingEvent{
		candidate("tue", "2026-10-27", 120),
		candidate("sat", "2026-10-24", 3),
	}, nil)

	feed, err := svc.Trending(context.Background())

	require.NoError(t, err)
	require.Len(t, feed.Events, 2)
	assert.Equal(t, "sat", feed.Events[0].Event.ID)
	assert.True(t, feed.Events[0].InWeekendWindow)
	assert.Equal(t, "tue", feed.Events[1].Event.ID)
	assert.False(t, feed.Events[1].InWeekendWindow)
	assert.Equal(t, 120, feed.Events[1].SaveCount)
}

func TestTrendingService_NeverReturnsMoreThanTen(t *testing.T) {
	trending := new(MockTrendingRepository)
	monday := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc := services.NewTrendingService(trending, clock.NewFixed(monday))

	rows := make([]*entities.TrendingEvent, 15)
	for i := range rows {
		rows[i] = candidate(fmt.Sprintf("evt-%02d", i), "2026-11-02", i)
	}
	trending.On("ListTrending", mock.Anything, mock.Anything).Return(rows, nil)

	feed, err := svc.Trending(context.Background())

	require.NoError(t, err)
	require.Len(t, feed.Events, services.TrendingLimit)
	assert.Equal(t, "evt-14", feed.Events[0].Event.ID)
	assert.Equal(t, "evt-05", feed.Events[9].Event.ID)
}

func TestTrendingService_TiesBreakBySoonestThenID(t *testing.T) {
	trending := new(MockTrendingRepository)
	svc := services.NewTrendingService(trending, clock.NewFixed(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))

	trending.On("ListTrending", mock.Anything, mock.Anything).Return([]*entities.TrendingEvent{
		candidate("late", "2026-11-10", 0),
		candidate("early-b", "2026-11-03", 0),
		candidate("early-a", "2026-11-03", 0),
	}, nil)

	feed, err := svc.Trending(context.Background())

	require.NoError(t, err)
	require.Len(t, feed.Events, 3)
	assert.Equal(t, "early-a", feed.Events[0].Event.ID)
	assert.Equal(t, "early-b", feed.Events[1].Event.ID)
	assert.Zero(t, feed.Events[0].SaveCount)
}

func TestTrendingService_PropagatesRepositoryErrors(t *testing.T) {
	trending := new(MockTrendingRepository)
	svc := services.NewTrendingService(trending, clock.NewFixed(time.Now()))

	trending.On("ListTrending", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.Trending(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
