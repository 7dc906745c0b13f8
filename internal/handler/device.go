package handler

import (
	"log/slog"
	"net/http"

	"iotdash/internal/domain/models/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
	"iotdash/internal/httputil"
)

// DeviceHandler serves the flat device and data point collections
type DeviceHandler struct {
	deviceService invSvc.DeviceService
	logger        *slog.Logger
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(deviceService invSvc.DeviceService, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
		logger:        logger,
	}
}

// ListDevices returns devices
// GET /api/devices?location_id=&area_id=&status=
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	filter := inventory.DeviceFilter{
		LocationID: httputil.QueryString(r, "location_id"),
		AreaID:     httputil.QueryString(r, "area_id"),
		Status:     httputil.QueryString(r, "status"),
	}

	devices, err := h.deviceService.ListDevices(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, devices)
}

// ListDataPoints returns data points
// GET /api/data-points?device_id=
func (h *DeviceHandler) ListDataPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.deviceService.ListDataPoints(r.Context(), httputil.QueryString(r, "device_id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, points)
}
