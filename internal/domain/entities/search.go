package entities

import "time"

// SearchRadiusMiles is the hard distance cutoff applied when the caller
// supplies coordinates.
const SearchRadiusMiles = 25.0

// SearchQuery is the full, ephemeral input tuple of a venue search.
// Its JSON form is the cache identity, so every field is serialized.
type SearchQuery struct {
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Category  string     `json:"category"`
	Tag       string     `json:"tag"`
	Name      string     `json:"name"`
	Lat       *float64   `json:"lat"`
	Lng       *float64   `json:"lng"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// HasCoordinates reports whether distance ranking applies.
func (q SearchQuery) HasCoordinates() bool {
	return q.Lat != nil && q.Lng != nil
}

// HasCriteria reports whether at least one filter beyond pagination is set.
func (q SearchQuery) HasCriteria() bool {
	return q.Location != "" || q.StartDate != nil || q.EndDate != nil ||
		q.Category != "" || q.Tag != "" || q.Name != "" || q.HasCoordinates()
}

// CompositeResultRow is one matching venue with its soonest qualifying event.
type CompositeResultRow struct {
	EventID            string             `json:"event_id"`
	VenueID            string             `json:"venue_id"`
	VenueName          string             `json:"venue_name"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Zip                string             `json:"zip"`
	Latitude           *float64           `json:"latitude,omitempty"`
	Longitude          *float64           `json:"longitude,omitempty"`
	ImageURL           string             `json:"image_url,omitempty"`
	Website            string             `json:"website,omitempty"`
	SubscriptionTier   SubscriptionTier   `json:"subscription_tier"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	EventDate          time.Time          `json:"event_date"`
	Category           EventCategory      `json:"category"`
	Description        string             `json:"description"`
	Tags               []string           `json:"tags"`
	Distance           *float64           `json:"distance,omitempty"`
}

// SearchResult is one page of ranked rows plus the total match count.
type SearchResult struct {
	TotalCount int                  `json:"total_count"`
	Rows       []CompositeResultRow `json:"rows"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// EmptySearchResult returns a zero-match page.
func EmptySearchResult(limit, offset int) *SearchResult {
	return &SearchResult{
		TotalCount: 0,
		Rows:       []CompositeResultRow{},
		Limit:      limit,
		Offset:     offset,
	}
}
