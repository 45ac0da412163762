package services

import (
	"sort"
	"time"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/pkg/clock"
)

// SearchRowLess orders search rows: pro tier first, then nearest (rows
// without a distance sort after rows with one), then soonest event date,
// then event ID.
func SearchRowLess(a, b *entities.CompositeResultRow) bool {
	if ap, bp := a.SubscriptionTier.IsPriority(), b.SubscriptionTier.IsPriority(); ap != bp {
		return ap
	}

	switch {
	case a.Distance != nil && b.Distance != nil:
		if *a.Distance != *b.Distance {
			return *a.Distance < *b.Distance
		}
	case a.Distance != nil:
		return true
	case b.Distance != nil:
		return false
	}

	if !a.EventDate.Equal(b.EventDate) {
		return a.EventDate.Before(b.EventDate)
	}
	return a.EventID < b.EventID
}

// RankRows sorts rows in place by SearchRowLess.
func RankRows(rows []entities.CompositeResultRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return SearchRowLess(&rows[i], &rows[j])
	})
}

// TrendingLess orders trending candidates: inside the weekend window first,
// then most saved, then soonest, then event ID.
func TrendingLess(a, b *entities.TrendingEvent) bool {
	if a.InWeekendWindow != b.InWeekendWindow {
		return a.InWeekendWindow
	}
	if a.SaveCount != b.SaveCount {
		return a.SaveCount > b.SaveCount
	}
	if !a.Event.Date.Equal(b.Event.Date) {
		return a.Event.Date.Before(b.Event.Date)
	}
	return a.Event.ID < b.Event.ID
}

// RankTrending sorts candidates in place by TrendingLess.
func RankTrending(candidates []*entities.TrendingEvent) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return TrendingLess(candidates[i], candidates[j])
	})
}

// UpcomingWeekend returns the Friday through Sunday window relevant to
// today. Monday to Thursday look ahead to the coming weekend; Friday to
// Sunday use the weekend already under way.
func UpcomingWeekend(today time.Time) entities.WeekendWindow {
	day := clock.StartOfDay(today)

	var offset int
	switch wd := day.Weekday(); wd {
	case time.Sunday:
		offset = -2
	default:
		offset = int(time.Friday) - int(wd)
	}

	friday := day.AddDate(0, 0, offset)
	return entities.WeekendWindow{
		Start: friday,
		End:   friday.AddDate(0, 0, 2),
	}
}
