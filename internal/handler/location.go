package handler

import (
	"log/slog"
	"net/http"

	"iotdash/internal/domain/models/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
	"iotdash/internal/httputil"
)

// LocationHandler handles location and area requests
type LocationHandler struct {
	locationService invSvc.LocationService
	logger          *slog.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService invSvc.LocationService, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		logger:          logger,
	}
}

// ListLocations returns a flat list
// GET /api/locations?parent_id=&type=
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	query := &invSvc.LocationQuery{Type: httputil.QueryString(r, "type")}
	if r.URL.Query().Has("parent_id") {
		parentID := r.URL.Query().Get("parent_id")
		query.ParentID = &parentID
	}

	locations, err := h.locationService.ListLocations(r.Context(), query)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, locations)
}

// GetStats returns location counts by type
// GET /api/locations/stats
func (h *LocationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.locationService.Stats(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}

// GetLocation returns one location
// GET /api/locations/{id}
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.locationService.GetLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loc)
}

// ListChildren returns the direct children of a location
// GET /api/locations/{id}/children
func (h *LocationHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.locationService.ListChildren(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}

// CreateLocation creates a location or area
// POST /api/locations
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateLocationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := h.locationService.CreateLocation(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("create location request served", "id", loc.ID, "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusCreated, loc)
}

// UpdateLocation patches a location
// PATCH /api/locations/{id}
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateLocationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := h.locationService.UpdateLocation(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loc)
}

// MoveLocation reparents a location
// POST /api/locations/{id}/move
func (h *LocationHandler) MoveLocation(w http.ResponseWriter, r *http.Request) {
	var req inventory.MoveLocationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := h.locationService.MoveLocation(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("move location request served", "id", loc.ID, "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusOK, &inventory.MoveLocationResponse{
		Success:  true,
		Message:  "location moved",
		Location: loc,
	})
}

// DeleteLocation deletes a location and everything below it
// DELETE /api/locations/{id}
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.locationService.DeleteLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("delete location request served", "id", r.PathValue("id"), "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusOK, resp)
}
