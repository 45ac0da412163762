package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
)

// GeolocationHandler resolves free-text addresses to coordinates.
type GeolocationHandler struct {
	provider providers.GeolocationProvider
	validate *validator.Validate
}

type geocodeParams struct {
	Address string `query:"address" validate:"required,max=200"`
}

type geocodeResponse struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{
		provider: provider,
		validate: newQueryValidator(),
	}
}

// Geocode handles GET /api/geocode?address=
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	params := geocodeParams{Address: strings.TrimSpace(r.URL.Query().Get("address"))}
	if err := h.validate.Struct(params); err != nil {
		respondWithError(w, http.StatusBadRequest, geocodeValidationMessage(err))
		return
	}

	coords, err := h.provider.Geocode(r.Context(), params.Address)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Debug().
			Err(err).
			Str("address", params.Address).
			Msg("geocode failed")
		respondWithAppError(w, r, err, "failed to geocode address")
		return
	}

	respondWithJSON(w, http.StatusOK, geocodeResponse{
		Address: params.Address,
		Lat:     coords.Latitude,
		Lng:     coords.Longitude,
	})
}

func geocodeValidationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return "address parameter is required"
	}
	return validationMessage(err)
}
