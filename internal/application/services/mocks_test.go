package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
)

type MockVenueSearcher struct {
	mock.Mock
}

func (m *MockVenueSearcher) Search(ctx context.Context, query entities.SearchQuery, location entities.LocationFilter) (*entities.SearchResult, error) {
	args := m.Called(ctx, query, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SearchResult), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *MockEventRepository) GetPairingReference(ctx context.Context, eventID string) (*entities.PairingReference, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PairingReference), args.Error(1)
}

func (m *MockEventRepository) FindPairings(ctx context.Context, criteria repositories.PairingCriteria) ([]*entities.Event, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

type MockTrendingRepository struct {
	mock.Mock
}

func (m *MockTrendingRepository) ListTrending(ctx context.Context, criteria repositories.TrendingCriteria) ([]*entities.TrendingEvent, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TrendingEvent), args.Error(1)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
