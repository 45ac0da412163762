package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zatekoja/venuediscovery/internal/api/loaders"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

// TrendingFeeder builds the trending feed
type TrendingFeeder interface {
	Trending(ctx context.Context) (*entities.TrendingFeed, error)
}

// PairingFinder finds complementary events
type PairingFinder interface {
	Pairings(ctx context.Context, eventID string) (*entities.PairingResult, error)
}

// RecommendationHandler serves the trending and pairing endpoints
type RecommendationHandler struct {
	trending TrendingFeeder
	pairings PairingFinder
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(trending TrendingFeeder, pairings PairingFinder) *RecommendationHandler {
	return &RecommendationHandler{
		trending: trending,
		pairings: pairings,
	}
}

type windowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type trendingItemResponse struct {
	Event           *entities.Event `json:"event"`
	Venue           *entities.Venue `json:"venue,omitempty"`
	SaveCount       int             `json:"save_count"`
	InWeekendWindow bool            `json:"in_weekend_window"`
}

type trendingResponse struct {
	Window windowResponse         `json:"window"`
	Events []trendingItemResponse `json:"events"`
}

type pairingItemResponse struct {
	Event *entities.Event `json:"event"`
	Venue *entities.Venue `json:"venue,omitempty"`
}

type pairingResponse struct {
	ReferenceEventID    string                 `json:"reference_event_id"`
	ComplementCategory  entities.EventCategory `json:"complement_category"`
	ComplementAmbiguous bool                   `json:"complement_ambiguous"`
	Pairings            []pairingItemResponse  `json:"pairings"`
}

// Trending handles GET /api/events/trending
func (h *RecommendationHandler) Trending(w http.ResponseWriter, r *http.Request) {
	feed, err := h.trending.Trending(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, "failed to load trending events")
		return
	}

	venueIDs := make([]string, len(feed.Events))
	for i, te := range feed.Events {
		venueIDs[i] = te.Event.VenueID
	}
	venues, err := loaders.LoadVenues(r.Context(), venueIDs)
	if err != nil {
		respondWithAppError(w, r, err, "failed to load trending events")
		return
	}

	resp := trendingResponse{
		Window: windowResponse{
			Start: feed.Window.Start.Format(searchDateLayout),
			End:   feed.Window.End.Format(searchDateLayout),
		},
		Events: make([]trendingItemResponse, 0, len(feed.Events)),
	}
	for _, te := range feed.Events {
		resp.Events = append(resp.Events, trendingItemResponse{
			Event:           te.Event,
			Venue:           venues[te.Event.VenueID],
			SaveCount:       te.SaveCount,
			InWeekendWindow: te.InWeekendWindow,
		})
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// Pairings handles GET /api/events/{id}/pairings
func (h *RecommendationHandler) Pairings(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	result, err := h.pairings.Pairings(r.Context(), eventID)
	if err != nil {
		respondWithAppError(w, r, err, "failed to load pairings")
		return
	}

	venueIDs := make([]string, len(result.Pairings))
	for i, e := range result.Pairings {
		venueIDs[i] = e.VenueID
	}
	venues, err := loaders.LoadVenues(r.Context(), venueIDs)
	if err != nil {
		respondWithAppError(w, r, err, "failed to load pairings")
		return
	}

	resp := pairingResponse{
		ReferenceEventID:    result.ReferenceEventID,
		ComplementCategory:  result.ComplementCategory,
		ComplementAmbiguous: result.ComplementAmbiguous,
		Pairings:            make([]pairingItemResponse, 0, len(result.Pairings)),
	}
	for _, e := range result.Pairings {
		resp.Pairings = append(resp.Pairings, pairingItemResponse{
			Event: e,
			Venue: venues[e.VenueID],
		})
	}

	respondWithJSON(w, http.StatusOK, resp)
}
