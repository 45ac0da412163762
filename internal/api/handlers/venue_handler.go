package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
)

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venueRepo repositories.VenueRepository
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueRepo repositories.VenueRepository) *VenueHandler {
	return &VenueHandler{venueRepo: venueRepo}
}

// GetVenue handles GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	venue, err := h.venueRepo.GetByID(r.Context(), venueID)
	if err != nil {
		respondWithAppError(w, r, err, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, venue)
}

// GetOwnership handles GET /api/venues/{id}/ownership
func (h *VenueHandler) GetOwnership(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	ownership, err := h.venueRepo.GetOwnership(r.Context(), venueID)
	if err != nil {
		respondWithAppError(w, r, err, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, ownership)
}
