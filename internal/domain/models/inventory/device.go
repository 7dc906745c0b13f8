package inventory

import "time"

// Device is a piece of industrial equipment attached to a location or area
type Device struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	DeviceType  string     `json:"device_type" db:"device_type"`
	LocationID  *string    `json:"location_id" db:"location_id"`
	AreaID      *string    `json:"area_id" db:"area_id"`
	Status      string     `json:"status" db:"status"`
	Vendor      string     `json:"vendor,omitempty" db:"vendor"`
	Model       string     `json:"model,omitempty" db:"model"`
	Address     string     `json:"address,omitempty" db:"address"`
	LastSeen    *time.Time `json:"last_seen,omitempty" db:"last_seen"`
	Reliability float64    `json:"reliability_percent" db:"reliability_percent"`
	AlertCount  int        `json:"alert_count" db:"alert_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ParentID returns the id of the location or area the device hangs under.
// location_id takes precedence over area_id.
func (d *Device) ParentID() string {
	if d.LocationID != nil && *d.LocationID != "" {
		return *d.LocationID
	}
	if d.AreaID != nil {
		return *d.AreaID
	}
	return ""
}

// DeviceFilter narrows GET /devices
type DeviceFilter struct {
	LocationID *string
	AreaID     *string
	Status     *string
}

// DataPoint is a single value read from or written to a device
type DataPoint struct {
	ID          string    `json:"id" db:"id"`
	DeviceID    string    `json:"device_id" db:"device_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	DataType    string    `json:"data_type" db:"data_type"`
	Address     string    `json:"address,omitempty" db:"address"`
	Unit        string    `json:"unit,omitempty" db:"unit"`
	Value       any       `json:"value,omitempty" db:"value"`
	Enabled     bool      `json:"enabled" db:"enabled"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
