package handlers

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

const searchDateLayout = "2006-01-02"

// Searcher runs a ranked venue search
type Searcher interface {
	Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResult, error)
}

// SearchOptions tunes request parsing for the search endpoint
type SearchOptions struct {
	DefaultLimit int
	MaxLimit     int
	Timeout      time.Duration
}

// SearchHandler handles GET /api/search
type SearchHandler struct {
	searcher Searcher
	geocoder providers.GeolocationProvider
	opts     SearchOptions
	validate *validator.Validate
}

// NewSearchHandler creates a new search handler. geocoder may be nil, in
// which case the near parameter is rejected.
func NewSearchHandler(searcher Searcher, geocoder providers.GeolocationProvider, opts SearchOptions) *SearchHandler {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	return &SearchHandler{
		searcher: searcher,
		geocoder: geocoder,
		opts:     opts,
		validate: newQueryValidator(),
	}
}

type searchParams struct {
	Location  string   `query:"location" validate:"max=200"`
	StartDate string   `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Category  string   `query:"category" validate:"omitempty,oneof=music meals both all"`
	Tag       string   `query:"tag" validate:"max=100"`
	Name      string   `query:"name" validate:"max=200"`
	Near      string   `query:"near" validate:"max=200"`
	Lat       *float64 `query:"lat" validate:"omitempty,latitude"`
	Lng       *float64 `query:"lng" validate:"omitempty,longitude"`
}

func newQueryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	return v
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}

	query, err := h.parseQuery(ctx, r)
	if err != nil {
		observability.RecordSearch("rejected")
		respondWithAppError(w, r, err, "invalid search request")
		return
	}

	result, err := h.searcher.Search(ctx, query)
	if err != nil {
		observability.RecordSearch("error")
		respondWithAppError(w, r, err, "search failed")
		return
	}

	if result.TotalCount == 0 {
		observability.RecordSearch("empty")
	} else {
		observability.RecordSearch("results")
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *SearchHandler) parseQuery(ctx context.Context, r *http.Request) (entities.SearchQuery, error) {
	q := r.URL.Query()
	params := searchParams{
		Location:  strings.TrimSpace(q.Get("location")),
		StartDate: strings.TrimSpace(q.Get("start_date")),
		EndDate:   strings.TrimSpace(q.Get("end_date")),
		Category:  strings.ToLower(strings.TrimSpace(q.Get("category"))),
		Tag:       strings.TrimSpace(q.Get("tag")),
		Name:      strings.TrimSpace(q.Get("name")),
		Near:      strings.TrimSpace(q.Get("near")),
	}

	var err error
	if params.Lat, err = parseOptionalFloat(q.Get("lat")); err != nil {
		return entities.SearchQuery{}, apperrors.NewValidationError("lat must be a number")
	}
	if params.Lng, err = parseOptionalFloat(q.Get("lng")); err != nil {
		return entities.SearchQuery{}, apperrors.NewValidationError("lng must be a number")
	}

	if err := h.validate.Struct(params); err != nil {
		return entities.SearchQuery{}, apperrors.NewValidationError(validationMessage(err))
	}
	if (params.Lat == nil) != (params.Lng == nil) {
		return entities.SearchQuery{}, apperrors.NewValidationError("lat and lng must be provided together")
	}

	query := entities.SearchQuery{
		Location: params.Location,
		Category: params.Category,
		Tag:      params.Tag,
		Name:     params.Name,
		Lat:      params.Lat,
		Lng:      params.Lng,
		Limit:    h.opts.DefaultLimit,
	}

	if params.StartDate != "" {
		start, _ := time.Parse(searchDateLayout, params.StartDate)
		query.StartDate = &start
	}
	if params.EndDate != "" {
		end, _ := time.Parse(searchDateLayout, params.EndDate)
		query.EndDate = &end
	}
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		return entities.SearchQuery{}, apperrors.NewValidationError("end_date must not be before start_date")
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return entities.SearchQuery{}, apperrors.NewValidationError("limit must be an integer")
		}
		query.Limit = min(limit, h.opts.MaxLimit)
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return entities.SearchQuery{}, apperrors.NewValidationError("offset must be an integer")
		}
		query.Offset = offset
	}

	if params.Near != "" && !query.HasCoordinates() {
		if h.geocoder == nil {
			return entities.SearchQuery{}, apperrors.NewValidationError("near is not supported")
		}
		coords, err := h.geocoder.Geocode(ctx, params.Near)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				return entities.SearchQuery{}, apperrors.NewValidationError("could not resolve near location")
			}
			return entities.SearchQuery{}, err
		}
		query.Lat = &coords.Latitude
		query.Lng = &coords.Longitude
	}

	if !query.HasCriteria() {
		return entities.SearchQuery{}, apperrors.NewValidationError("at least one search filter is required")
	}

	return query, nil
}

func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "latitude", "longitude":
		return field + " is out of range"
	case "max":
		return field + " is too long"
	}
	return field + " is invalid"
}
