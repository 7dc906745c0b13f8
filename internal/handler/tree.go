package handler

import (
	"log/slog"
	"net/http"

	invSvc "iotdash/internal/domain/services/inventory"
	"iotdash/internal/httputil"
)

// TreeHandler serves the nested location hierarchy
type TreeHandler struct {
	treeService invSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService invSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the location/area hierarchy
// GET /api/locations/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetLocationTree(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
