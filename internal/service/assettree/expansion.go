package assettree

import (
	"slices"

	models "iotdash/internal/domain/models/assettree"
)

// Expansion is the set of node ids rendered open. Collapsing a node leaves
// its descendants' entries alone, so they reopen as they were.
// The zero value is not usable; create one with NewExpansion.
type Expansion struct {
	open map[string]bool
}

// NewExpansion creates an expansion set with the given ids open
func NewExpansion(ids ...string) *Expansion {
	e := &Expansion{open: make(map[string]bool, len(ids))}
	e.ExpandAll(ids)
	return e
}

// Toggle flips id and returns whether it is now open
func (e *Expansion) Toggle(id string) bool {
	if e.open[id] {
		delete(e.open, id)
		return false
	}
	e.open[id] = true
	return true
}

func (e *Expansion) Expand(id string) {
	e.open[id] = true
}

func (e *Expansion) Collapse(id string) {
	delete(e.open, id)
}

// ExpandAll adds every id to the set
func (e *Expansion) ExpandAll(ids []string) {
	for _, id := range ids {
		e.open[id] = true
	}
}

// CollapseAll empties the set
func (e *Expansion) CollapseAll() {
	clear(e.open)
}

func (e *Expansion) IsExpanded(id string) bool {
	return e.open[id]
}

// ExpandRoots opens every root of a freshly built forest
func (e *Expansion) ExpandRoots(roots []*models.TreeNode) {
	for _, root := range roots {
		e.open[root.ID] = true
	}
}

// IDs returns the open ids, sorted
func (e *Expansion) IDs() []string {
	ids := make([]string, 0, len(e.open))
	for id := range e.open {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Expansion) Len() int {
	return len(e.open)
}

// Row is one rendered line of the tree
type Row struct {
	Node     *models.TreeNode
	Depth    int
	IsLast   bool // last among its siblings
	Expanded bool
}

// VisibleRows flattens the forest into the rows a view shows: every root,
// and the children of every expanded node.
func VisibleRows(roots []*models.TreeNode, expansion *Expansion) []Row {
	var rows []Row
	var appendVisible func(nodes []*models.TreeNode, depth int)
	appendVisible = func(nodes []*models.TreeNode, depth int) {
		for i, node := range nodes {
			open := expansion.IsExpanded(node.ID)
			rows = append(rows, Row{
				Node:     node,
				Depth:    depth,
				IsLast:   i == len(nodes)-1,
				Expanded: open && node.HasChildren(),
			})
			if open {
				appendVisible(node.Children, depth+1)
			}
		}
	}
	appendVisible(roots, 0)
	return rows
}
