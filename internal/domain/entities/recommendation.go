package entities

import "time"

// WeekendWindow is an inclusive Friday through Sunday date span.
type WeekendWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date of t falls inside the window.
func (w WeekendWindow) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Start.Location())
	return !d.Before(w.Start) && !d.After(w.End)
}

// TrendingEvent is an upcoming event with its popularity signals.
type TrendingEvent struct {
	Event           *Event `json:"event"`
	SaveCount       int    `json:"save_count"`
	InWeekendWindow bool   `json:"in_weekend_window"`
}

// TrendingFeed is the ranked trending list and the window it was built for.
type TrendingFeed struct {
	Window WeekendWindow    `json:"window"`
	Events []*TrendingEvent `json:"events"`
}

// PairingReference is an event resolved together with its venue's city.
type PairingReference struct {
	Event *Event
	City  string
}

// PairingResult lists complementary events for a reference event.
type PairingResult struct {
	ReferenceEventID    string        `json:"reference_event_id"`
	ComplementCategory  EventCategory `json:"complement_category"`
	ComplementAmbiguous bool          `json:"complement_ambiguous"`
	Pairings            []*Event      `json:"pairings"`
}
