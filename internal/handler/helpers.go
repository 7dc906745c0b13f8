package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"iotdash/internal/domain"
	"iotdash/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Unexpected errors
// are logged and hidden behind a generic 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		var extras map[string]interface{}
		if conflictErr.ResourceID != "" {
			extras = map[string]interface{}{
				"resource_type": conflictErr.ResourceType,
				"resource_id":   conflictErr.ResourceID,
			}
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
