package inventory

import (
	"context"
	"log/slog"

	"iotdash/internal/domain/models/inventory"
	invRepo "iotdash/internal/domain/repositories/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
)

type deviceService struct {
	deviceRepo    invRepo.DeviceRepository
	dataPointRepo invRepo.DataPointRepository
	logger        *slog.Logger
}

// NewDeviceService creates a read-only device service
func NewDeviceService(
	deviceRepo invRepo.DeviceRepository,
	dataPointRepo invRepo.DataPointRepository,
	logger *slog.Logger,
) invSvc.DeviceService {
	return &deviceService{
		deviceRepo:    deviceRepo,
		dataPointRepo: dataPointRepo,
		logger:        logger,
	}
}

func (s *deviceService) ListDevices(ctx context.Context, filter inventory.DeviceFilter) ([]inventory.Device, error) {
	return s.deviceRepo.List(ctx, filter)
}

func (s *deviceService) ListDataPoints(ctx context.Context, deviceID *string) ([]inventory.DataPoint, error) {
	return s.dataPointRepo.List(ctx, deviceID)
}
