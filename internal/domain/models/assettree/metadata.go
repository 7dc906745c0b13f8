package assettree

import "time"

// Metadata is the kind-specific payload of a TreeNode.
// Implementations: *SiteMetadata, *DeviceMetadata, *DataPointMetadata.
type Metadata interface {
	NodeKinds() []Kind
}

// Coordinates is a GPS position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SiteMetadata belongs to location and area nodes
type SiteMetadata struct {
	Address     string       `json:"address,omitempty"`
	Manager     string       `json:"manager,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (m *SiteMetadata) NodeKinds() []Kind { return []Kind{KindLocation, KindArea} }

// DeviceMetadata belongs to device nodes
type DeviceMetadata struct {
	DeviceType  string     `json:"device_type,omitempty"`
	Vendor      string     `json:"vendor,omitempty"`
	Model       string     `json:"model,omitempty"`
	Address     string     `json:"address,omitempty"`
	LastSeen    *time.Time `json:"last_seen,omitempty"`
	Reliability float64    `json:"reliability"`
}

func (m *DeviceMetadata) NodeKinds() []Kind { return []Kind{KindDevice} }

// DataPointMetadata belongs to data point nodes
type DataPointMetadata struct {
	Value    any    `json:"value,omitempty"`
	Unit     string `json:"unit,omitempty"`
	DataType string `json:"data_type,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (m *DataPointMetadata) NodeKinds() []Kind { return []Kind{KindDataPoint} }

// MetadataFits reports whether m is a valid payload for a node of kind k.
// A nil payload fits every kind.
func MetadataFits(m Metadata, k Kind) bool {
	if m == nil {
		return true
	}
	for _, kind := range m.NodeKinds() {
		if kind == k {
			return true
		}
	}
	return false
}
