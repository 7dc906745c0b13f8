package assettree

import "strings"

// Kind is the closed set of node kinds in the asset hierarchy
type Kind string

const (
	KindLocation  Kind = "location"   // factory, plant, site
	KindArea      Kind = "area"       // production floor, workshop, zone
	KindDevice    Kind = "device"     // PLC, sensor, drive
	KindDataPoint Kind = "data_point" // a single measured/controlled value on a device
)

// Valid reports whether k is one of the four node kinds
func (k Kind) Valid() bool {
	switch k {
	case KindLocation, KindArea, KindDevice, KindDataPoint:
		return true
	}
	return false
}

// CanContain reports whether a node of kind k may own a child of kind child.
func (k Kind) CanContain(child Kind) bool {
	switch k {
	case KindLocation:
		return child == KindArea || child == KindDevice
	case KindArea:
		return child == KindDevice
	case KindDevice:
		return child == KindDataPoint
	default:
		return false
	}
}

// CanBeRoot reports whether a node of kind k may sit at the top of the hierarchy
func (k Kind) CanBeRoot() bool {
	return k == KindLocation
}

// Draggable reports whether a drag gesture may start on a node of kind k.
// Devices and data points are never moved through the tree.
func (k Kind) Draggable() bool {
	return k == KindLocation || k == KindArea
}

// DropTarget reports whether a node of kind k may receive a drop
func (k Kind) DropTarget() bool {
	return k == KindLocation || k == KindArea
}

// Status is the display status of a node
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
	StatusWarning  Status = "warning"
	StatusUnknown  Status = "unknown"
)

// NormalizeStatus maps a backend status string onto the five node statuses
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "online":
		return StatusActive
	case "inactive", "offline":
		return StatusInactive
	case "error":
		return StatusError
	case "warning", "maintenance":
		return StatusWarning
	default:
		return StatusUnknown
	}
}

// TreeNode is a location, area, device or data point in the asset hierarchy.
// Each node is owned by exactly one parent's Children slice; ParentID is
// informational and never used to mutate the tree.
type TreeNode struct {
	ID          string      `json:"id"`
	Kind        Kind        `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ParentID    *string     `json:"parent_id"`
	Status      Status      `json:"status"`
	Children    []*TreeNode `json:"children"`

	// Derived, recomputed by AggregateCounts
	DeviceCount       int `json:"device_count"`
	ActiveDeviceCount int `json:"active_device_count"`
	AlertCount        int `json:"alert_count"`

	Metadata Metadata `json:"metadata,omitempty"`

	// ownAlerts is the alert count reported for this node itself (devices only)
	ownAlerts int
}

// SetOwnAlerts records the open alerts reported for this node itself.
// AlertCount is derived from it by AggregateCounts.
func (n *TreeNode) SetOwnAlerts(count int) {
	if count < 0 {
		count = 0
	}
	n.ownAlerts = count
}

// IsRoot reports whether n has no parent
func (n *TreeNode) IsRoot() bool {
	return n.ParentID == nil
}

// HasChildren reports whether n owns at least one child
func (n *TreeNode) HasChildren() bool {
	return len(n.Children) > 0
}

// MatchesName reports whether the lowercase needle is a substring of the node name
func (n *TreeNode) MatchesName(needle string) bool {
	return strings.Contains(strings.ToLower(n.Name), needle)
}

// ShallowCopy returns a copy of n sharing its metadata but with its own Children slice header
func (n *TreeNode) ShallowCopy() *TreeNode {
	cp := *n
	return &cp
}

// Walk visits every node depth-first (pre-order). Returning false from fn
// skips the node's subtree.
func Walk(roots []*TreeNode, fn func(node *TreeNode, depth int) bool) {
	var visit func(nodes []*TreeNode, depth int)
	visit = func(nodes []*TreeNode, depth int) {
		for _, node := range nodes {
			if fn(node, depth) {
				visit(node.Children, depth+1)
			}
		}
	}
	visit(roots, 0)
}

// Find returns the node with the given id anywhere in the forest, or nil
func Find(roots []*TreeNode, id string) *TreeNode {
	var found *TreeNode
	Walk(roots, func(node *TreeNode, _ int) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Index maps every node id in the forest to its node
func Index(roots []*TreeNode) map[string]*TreeNode {
	index := make(map[string]*TreeNode)
	Walk(roots, func(node *TreeNode, _ int) bool {
		index[node.ID] = node
		return true
	})
	return index
}

// IDs returns the ids of every node in the forest, pre-order
func IDs(roots []*TreeNode) []string {
	var ids []string
	Walk(roots, func(node *TreeNode, _ int) bool {
		ids = append(ids, node.ID)
		return true
	})
	return ids
}

// Count returns the number of nodes of the given kind in the forest
func Count(roots []*TreeNode, kind Kind) int {
	count := 0
	Walk(roots, func(node *TreeNode, _ int) bool {
		if node.Kind == kind {
			count++
		}
		return true
	})
	return count
}
