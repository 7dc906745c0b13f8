package assettree

import (
	"context"
	"log/slog"

	models "iotdash/internal/domain/models/assettree"
	svc "iotdash/internal/domain/services/assettree"
)

// View is the presentation-side state around the core: the last good tree
// snapshot, the active search term and the expansion set. It is not safe
// for concurrent use.
type View struct {
	loader    svc.Loader
	expansion *Expansion
	roots     []*models.TreeNode
	term      string
	logger    *slog.Logger
}

// NewView creates an empty view backed by loader
func NewView(loader svc.Loader, logger *slog.Logger) *View {
	return &View{
		loader:    loader,
		expansion: NewExpansion(),
		logger:    logger,
	}
}

// Reload rebuilds the tree. On failure the previous snapshot stays in place
// and the error is returned.
func (v *View) Reload(ctx context.Context) error {
	roots, err := v.loader.Build(ctx)
	if err != nil {
		v.logger.Warn("keeping previous asset tree", "error", err)
		return err
	}
	v.Replace(roots)
	return nil
}

// Replace adopts a freshly built forest, such as the one returned by a
// reparent or mutation, and opens its roots.
func (v *View) Replace(roots []*models.TreeNode) {
	v.roots = roots
	v.expansion.ExpandRoots(roots)
	if v.term != "" {
		v.expansion.ExpandAll(ExpansionTargets(v.Visible(), v.term))
	}
}

// Search sets the filter term and opens the path to every match
func (v *View) Search(term string) []*models.TreeNode {
	v.term = normalizeTerm(term)
	visible := v.Visible()
	v.expansion.ExpandAll(ExpansionTargets(visible, v.term))
	return visible
}

// Roots returns the unfiltered snapshot
func (v *View) Roots() []*models.TreeNode {
	return v.roots
}

// Visible returns the snapshot filtered by the current term
func (v *View) Visible() []*models.TreeNode {
	return Filter(v.roots, v.term)
}

// Rows returns the rendered rows of the filtered, expanded tree
func (v *View) Rows() []Row {
	return VisibleRows(v.Visible(), v.expansion)
}

// Find looks a node up by id in the unfiltered snapshot
func (v *View) Find(id string) *models.TreeNode {
	return models.Find(v.roots, id)
}

func (v *View) Expansion() *Expansion {
	return v.expansion
}

func (v *View) Term() string {
	return v.term
}
