package handler

import (
	"net/http"

	"iotdash/internal/httputil"
)

// Handlers groups every API handler
type Handlers struct {
	Tree     *TreeHandler
	Location *LocationHandler
	Device   *DeviceHandler
}

// RegisterRoutes mounts the API on mux. protect wraps every /api route;
// pass nil when authentication is disabled.
func RegisterRoutes(mux *http.ServeMux, h *Handlers, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protect(fn))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	api("GET /api/locations/tree", h.Tree.GetTree)
	api("GET /api/locations/stats", h.Location.GetStats)
	api("GET /api/locations", h.Location.ListLocations)
	api("POST /api/locations", h.Location.CreateLocation)
	api("GET /api/locations/{id}", h.Location.GetLocation)
	api("PATCH /api/locations/{id}", h.Location.UpdateLocation)
	api("DELETE /api/locations/{id}", h.Location.DeleteLocation)
	api("GET /api/locations/{id}/children", h.Location.ListChildren)
	api("POST /api/locations/{id}/move", h.Location.MoveLocation)

	api("GET /api/devices", h.Device.ListDevices)
	api("GET /api/data-points", h.Device.ListDataPoints)
}
