package inventory

import (
	"context"

	"iotdash/internal/domain/models/inventory"
)

// LocationService handles location and area business logic
type LocationService interface {
	// CreateLocation validates, sanitises and stores a new location or area
	CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error)

	GetLocation(ctx context.Context, id string) (*inventory.Location, error)

	// ListLocations returns a flat list, optionally narrowed by parent and type
	ListLocations(ctx context.Context, query *LocationQuery) ([]inventory.Location, error)

	// ListChildren returns the direct children of an existing location
	ListChildren(ctx context.Context, id string) ([]inventory.Location, error)

	UpdateLocation(ctx context.Context, id string, req *inventory.UpdateLocationRequest) (*inventory.Location, error)

	// MoveLocation reparents a location and inserts it at the requested sibling index
	MoveLocation(ctx context.Context, id string, req *inventory.MoveLocationRequest) (*inventory.Location, error)

	// DeleteLocation removes the location, its descendants, their devices and data points
	DeleteLocation(ctx context.Context, id string) (*inventory.DeleteLocationResponse, error)

	Stats(ctx context.Context) (*inventory.LocationStats, error)
}

// LocationQuery narrows ListLocations
type LocationQuery struct {
	ParentID *string // "" or "null" selects roots
	Type     *string
}

// TreeService assembles the nested location hierarchy
type TreeService interface {
	GetLocationTree(ctx context.Context) ([]*inventory.LocationNode, error)
}

// DeviceService exposes the device and data point collections
type DeviceService interface {
	ListDevices(ctx context.Context, filter inventory.DeviceFilter) ([]inventory.Device, error)
	ListDataPoints(ctx context.Context, deviceID *string) ([]inventory.DataPoint, error)
}
