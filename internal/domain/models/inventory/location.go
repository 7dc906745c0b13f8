package inventory

import (
	"time"

	"iotdash/internal/httputil"
)

// LocationType distinguishes sites from the areas inside them
type LocationType string

const (
	LocationTypeLocation LocationType = "location"
	LocationTypeArea     LocationType = "area"
)

// Location is a stored location or area record
type Location struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Type        LocationType   `json:"type" db:"type"`
	ParentID    *string        `json:"parent_id" db:"parent_id"` // NULL = root location
	Address     string         `json:"address" db:"address"`
	Manager     string         `json:"manager,omitempty" db:"manager"`
	Latitude    *float64       `json:"lat,omitempty" db:"lat"`
	Longitude   *float64       `json:"lng,omitempty" db:"lng"`
	Metadata    map[string]any `json:"metadata" db:"metadata"`
	Status      string         `json:"status" db:"status"`
	OrderIndex  int            `json:"order_index" db:"order_index"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// LocationNode is a location with its nested child locations/areas.
// This is the wire shape of GET /locations/tree.
type LocationNode struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        LocationType    `json:"type"`
	ParentID    *string         `json:"parent_id"`
	Address     string          `json:"address,omitempty"`
	Manager     string          `json:"manager,omitempty"`
	Latitude    *float64        `json:"lat,omitempty"`
	Longitude   *float64        `json:"lng,omitempty"`
	Status      string          `json:"status"`
	OrderIndex  int             `json:"order_index"`
	Children    []*LocationNode `json:"children"`
}

// LocationStats counts stored locations by type
type LocationStats struct {
	Total     int `json:"total"`
	Locations int `json:"locations"`
	Areas     int `json:"areas"`
}

// CreateLocationRequest is the body of POST /locations
type CreateLocationRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        LocationType   `json:"type"`
	ParentID    *string        `json:"parent_id"`
	Address     string         `json:"address"`
	Manager     string         `json:"manager,omitempty"`
	Latitude    *float64       `json:"lat,omitempty"`
	Longitude   *float64       `json:"lng,omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

// UpdateLocationRequest is the body of PATCH /locations/{id}
type UpdateLocationRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Description httputil.OptionalString `json:"description"`
	Address     httputil.OptionalString `json:"address"`
	Manager     httputil.OptionalString `json:"manager"`
	Status      *string                 `json:"status,omitempty"`
}

// MoveLocationRequest is the body of POST /locations/{id}/move
type MoveLocationRequest struct {
	NewParentID *string `json:"new_parent_id"`
	NewOrderIdx int     `json:"new_order_index"`
}

// MoveLocationResponse is returned by a successful move
type MoveLocationResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Location *Location `json:"location"`
}

// DeleteLocationResponse is returned by a successful cascading delete
type DeleteLocationResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	DeletedLocations  int    `json:"deleted_locations"`
	DeletedDevices    int    `json:"deleted_devices"`
	DeletedDataPoints int    `json:"deleted_data_points"`
}
