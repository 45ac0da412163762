package entities

import "time"

// EventCategory classifies what an event offers.
type EventCategory string

const (
	CategoryMusic EventCategory = "music"
	CategoryMeals EventCategory = "meals"
	CategoryBoth  EventCategory = "both"
)

// Valid reports whether c is one of the stored categories.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryMusic, CategoryMeals, CategoryBoth:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusDraft     EventStatus = "draft"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a scheduled occurrence owned by exactly one venue
type Event struct {
	ID          string        `json:"id"`
	VenueID     string        `json:"venue_id"`
	Date        time.Time     `json:"date"`
	Category    EventCategory `json:"category"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Status      EventStatus   `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
