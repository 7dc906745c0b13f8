package assettree

import "fmt"

// AggregateCounts recomputes DeviceCount, ActiveDeviceCount and AlertCount
// bottom-up for every node in the forest.
func AggregateCounts(roots []*TreeNode) {
	for _, root := range roots {
		aggregate(root)
	}
}

func aggregate(n *TreeNode) (devices, active, alerts int) {
	for _, child := range n.Children {
		d, a, al := aggregate(child)
		devices += d
		active += a
		alerts += al
		if child.Kind == KindDevice {
			devices++
			if child.Status == StatusActive {
				active++
			}
		}
	}
	alerts += n.ownAlerts

	n.DeviceCount = devices
	n.ActiveDeviceCount = active
	n.AlertCount = alerts
	return devices, active, alerts
}

// Validate checks the structural invariants of a forest: unique ids (so no
// node is reachable twice), kind-legal parent/child pairs, parent ids that
// agree with ownership, and metadata that fits the node kind.
func Validate(roots []*TreeNode) error {
	seen := make(map[string]bool)

	var check func(nodes []*TreeNode, parent *TreeNode) error
	check = func(nodes []*TreeNode, parent *TreeNode) error {
		for _, n := range nodes {
			if !n.Kind.Valid() {
				return fmt.Errorf("node %s: unknown kind %q", n.ID, n.Kind)
			}
			if seen[n.ID] {
				return fmt.Errorf("node %s: reachable more than once", n.ID)
			}
			seen[n.ID] = true

			if parent == nil {
				if !n.Kind.CanBeRoot() {
					return fmt.Errorf("node %s: %s cannot be a root", n.ID, n.Kind)
				}
			} else {
				if !parent.Kind.CanContain(n.Kind) {
					return fmt.Errorf("node %s: %s cannot contain %s", n.ID, parent.Kind, n.Kind)
				}
				if n.ParentID == nil || *n.ParentID != parent.ID {
					return fmt.Errorf("node %s: parent id does not match owner %s", n.ID, parent.ID)
				}
			}
			if !MetadataFits(n.Metadata, n.Kind) {
				return fmt.Errorf("node %s: metadata does not fit kind %s", n.ID, n.Kind)
			}
			if err := check(n.Children, n); err != nil {
				return err
			}
		}
		return nil
	}

	return check(roots, nil)
}
