package services

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func miles(v float64) *float64 { return &v }

func TestSearchRowLess_ProBeatsDistanceAndDate(t *testing.T) {
	pro := &entities.CompositeResultRow{EventID: "e1", SubscriptionTier: entities.TierPro, Distance: miles(24), EventDate: day("2026-12-31")}
	free := &entities.CompositeResultRow{EventID: "e2", SubscriptionTier: entities.TierFree, Distance: miles(0.1), EventDate: day("2026-10-18")}
	enterprise := &entities.CompositeResultRow{EventID: "e3", SubscriptionTier: entities.TierEnterprise, Distance: miles(0.1), EventDate: day("2026-10-18")}

	assert.True(t, SearchRowLess(pro, free))
	assert.False(t, SearchRowLess(free, pro))
	assert.True(t, SearchRowLess(pro, enterprise))
}

func TestSearchRowLess_DistanceThenDateThenID(t *testing.T) {
	near := &entities.CompositeResultRow{EventID: "b", Distance: miles(1), EventDate: day("2026-11-01")}
	far := &entities.CompositeResultRow{EventID: "a", Distance: miles(2), EventDate: day("2026-10-20")}
	assert.True(t, SearchRowLess(near, far))

	early := &entities.CompositeResultRow{EventID: "z", EventDate: day("2026-10-20")}
	late := &entities.CompositeResultRow{EventID: "a", EventDate: day("2026-10-21")}
	assert.True(t, SearchRowLess(early, late))

	x := &entities.CompositeResultRow{EventID: "x", EventDate: day("2026-10-20")}
	y := &entities.CompositeResultRow{EventID: "y", EventDate: day("2026-10-20")}
	assert.True(t, SearchRowLess(x, y))
	assert.False(t, SearchRowLess(y, x))
}

func TestSearchRowLess_MissingDistanceSortsLast(t *testing.T) {
	withDistance := &entities.CompositeResultRow{EventID: "b", Distance: miles(20), EventDate: day("2026-12-01")}
	without := &entities.CompositeResultRow{EventID: "a", EventDate: day("2026-10-01")}

	assert.True(t, SearchRowLess(withDistance, without))
	assert.False(t, SearchRowLess(without, withDistance))
}

func TestRankRows_ProRowsAlwaysPrecedeOthers(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tiers := []entities.SubscriptionTier{entities.TierFree, entities.TierPro, entities.TierEnterprise}

	rows := make([]entities.CompositeResultRow, 200)
	for i := range rows {
		rows[i] = entities.CompositeResultRow{
			EventID:          fmt.Sprintf("evt-%03d", i),
			SubscriptionTier: tiers[r.Intn(len(tiers))],
			Distance:         miles(r.Float64() * 25),
			EventDate:        day("2026-10-01").AddDate(0, 0, r.Intn(60)),
		}
	}

	RankRows(rows)

	seenNonPro := false
	for _, row := range rows {
		if row.SubscriptionTier != entities.TierPro {
			seenNonPro = true
			continue
		}
		require.False(t, seenNonPro, "pro row %s ranked after a non-pro row", row.EventID)
	}
	for i := 1; i < len(rows); i++ {
		assert.False(t, SearchRowLess(&rows[i], &rows[i-1]))
	}
}

func TestTrendingLess(t *testing.T) {
	inWindow := &entities.TrendingEvent{Event: &entities.Event{ID: "a", Date: day("2026-10-24")}, SaveCount: 1, InWeekendWindow: true}
	popular := &entities.TrendingEvent{Event: &entities.Event{ID: "b", Date: day("2026-10-27")}, SaveCount: 500}
	lessPopular := &entities.TrendingEvent{Event: &entities.Event{ID: "c", Date: day("2026-10-20")}, SaveCount: 499}
	samePopularLater := &entities.TrendingEvent{Event: &entities.Event{ID: "d", Date: day("2026-10-28")}, SaveCount: 500}

	assert.True(t, TrendingLess(inWindow, popular))
	assert.True(t, TrendingLess(popular, lessPopular))
	assert.True(t, TrendingLess(popular, samePopularLater))
	assert.False(t, TrendingLess(samePopularLater, popular))
}

func TestUpcomingWeekend(t *testing.T) {
	tests := []struct {
		today     string
		wantStart string
		wantEnd   string
	}{
		{"2026-10-19", "2026-10-23", "2026-10-25"}, // Monday
		{"2026-10-21", "2026-10-23", "2026-10-25"}, // Wednesday
		{"2026-10-22", "2026-10-23", "2026-10-25"}, // Thursday
		{"2026-10-23", "2026-10-23", "2026-10-25"}, // Friday
		{"2026-10-24", "2026-10-23", "2026-10-25"}, // Saturday
		{"2026-10-25", "2026-10-23", "2026-10-25"}, // Sunday
		{"2026-12-30", "2027-01-01", "2027-01-03"}, // Wednesday across a year boundary
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			window := UpcomingWeekend(day(tt.today).Add(15 * time.Hour))
			assert.Equal(t, day(tt.wantStart), window.Start)
			assert.Equal(t, day(tt.wantEnd), window.End)
			assert.True(t, window.Contains(day(tt.wantEnd).Add(23*time.Hour)))
			assert.False(t, window.Contains(day(tt.wantEnd).AddDate(0, 0, 1)))
		})
	}
}
