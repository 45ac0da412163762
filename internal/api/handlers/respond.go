package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps err onto a status code. Internal details are
// logged, never returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := observability.LoggerFromContext(r.Context())

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("request timed out")
		respondWithError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeExternal:
			logger.Warn().Err(err).Msg("upstream dependency failed")
			respondWithError(w, http.StatusBadGateway, fallback)
			return
		}
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
	respondWithError(w, http.StatusInternalServerError, fallback)
}
