package inventory

import (
	"context"

	"iotdash/internal/domain/models/inventory"
)

// DeviceRepository defines data access operations for devices
type DeviceRepository interface {
	Create(ctx context.Context, device *inventory.Device) error
	List(ctx context.Context, filter inventory.DeviceFilter) ([]inventory.Device, error)

	// IDsByParents returns devices whose location_id or area_id is in parentIDs
	IDsByParents(ctx context.Context, parentIDs []string) ([]string, error)

	DeleteByIDs(ctx context.Context, ids []string) (int, error)
}

// DataPointRepository defines data access operations for data points
type DataPointRepository interface {
	Create(ctx context.Context, dp *inventory.DataPoint) error

	// List returns all data points, or those of one device when deviceID is set
	List(ctx context.Context, deviceID *string) ([]inventory.DataPoint, error)

	DeleteByDeviceIDs(ctx context.Context, deviceIDs []string) (int, error)
}
