package inventory

import (
	"context"

	"iotdash/internal/domain/models/inventory"
)

// LocationFilter narrows List. Nil fields are ignored.
type LocationFilter struct {
	ParentID  *string
	RootsOnly bool
	Type      *inventory.LocationType
}

// LocationRepository defines data access operations for locations and areas
type LocationRepository interface {
	Create(ctx context.Context, loc *inventory.Location) error

	// GetByID returns domain.ErrNotFound when the id is unknown
	GetByID(ctx context.Context, id string) (*inventory.Location, error)

	Update(ctx context.Context, loc *inventory.Location) error

	// List returns locations ordered by order_index, then created_at
	List(ctx context.Context, filter LocationFilter) ([]inventory.Location, error)

	// SubtreeIDs returns id and the ids of all its descendant locations and areas
	SubtreeIDs(ctx context.Context, id string) ([]string, error)

	// ShiftSiblings adds one to the order_index of every child of parentID
	// (roots when nil) at or after fromIndex, except excludeID
	ShiftSiblings(ctx context.Context, parentID *string, fromIndex int, excludeID string) error

	// NextOrderIndex returns the order_index that appends under parentID
	NextOrderIndex(ctx context.Context, parentID *string) (int, error)

	DeleteByIDs(ctx context.Context, ids []string) (int, error)

	Stats(ctx context.Context) (*inventory.LocationStats, error)
}
