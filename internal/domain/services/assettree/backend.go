package assettree

import (
	"context"

	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
)

// Backend is the REST collaborator the asset tree is built from and written
// through. Every write is followed by a full rebuild; nothing is patched locally.
type Backend interface {
	// FetchHierarchy returns the nested location/area hierarchy
	FetchHierarchy(ctx context.Context) ([]*inventory.LocationNode, error)

	// FetchDevices returns every device as a flat list
	FetchDevices(ctx context.Context) ([]inventory.Device, error)

	// FetchDataPoints returns every data point as a flat list
	FetchDataPoints(ctx context.Context) ([]inventory.DataPoint, error)

	// CreateLocation creates a location or area
	CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error)

	// MoveLocation reparents a location or area
	MoveLocation(ctx context.Context, id string, req *inventory.MoveLocationRequest) error

	// DeleteLocation removes a location or area together with its whole subtree
	DeleteLocation(ctx context.Context, id string) error
}

// Loader produces a fresh asset tree snapshot from the backend.
// Reparent and mutation controllers call it after every successful write.
type Loader interface {
	Build(ctx context.Context) ([]*models.TreeNode, error)
}
