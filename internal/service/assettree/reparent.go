package assettree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	svc "iotdash/internal/domain/services/assettree"
)

// DragState is the state of the single active drag gesture
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragHovering
	DragDropped
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragHovering:
		return "hovering"
	case DragDropped:
		return "dropped"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

var (
	// ErrDragInProgress is returned when a drag starts while another is active
	ErrDragInProgress = errors.New("a drag is already in progress")
	// ErrNoDrag is returned when hovering or dropping without an active drag
	ErrNoDrag = errors.New("no drag in progress")
)

// Reparenter drives drag-and-drop moves. Moves are pessimistic: nothing is
// changed locally, the backend is told, and the tree is rebuilt.
// It is not safe for concurrent use.
type Reparenter struct {
	backend svc.Backend
	loader  svc.Loader
	logger  *slog.Logger

	state   DragState
	dragged *models.TreeNode
	target  *models.TreeNode
}

// NewReparenter creates an idle reparent controller
func NewReparenter(backend svc.Backend, loader svc.Loader, logger *slog.Logger) *Reparenter {
	return &Reparenter{
		backend: backend,
		loader:  loader,
		logger:  logger,
	}
}

func (r *Reparenter) State() DragState { return r.state }

// Dragged returns the node being dragged, or nil when idle
func (r *Reparenter) Dragged() *models.TreeNode { return r.dragged }

// Target returns the hovered drop target, or nil
func (r *Reparenter) Target() *models.TreeNode { return r.target }

// BeginDrag starts a gesture on node. Only locations and areas can be dragged.
func (r *Reparenter) BeginDrag(node *models.TreeNode) error {
	if r.state != DragIdle {
		return ErrDragInProgress
	}
	if node == nil || !node.Kind.Draggable() {
		return fmt.Errorf("%w: only locations and areas can be moved", domain.ErrValidation)
	}
	r.dragged = node
	r.target = nil
	r.state = DragDragging
	return nil
}

// Hover moves the pointer over node. It reports whether node was accepted
// as a drop target; devices and data points never are, and leave the
// current target in place.
func (r *Reparenter) Hover(node *models.TreeNode) (bool, error) {
	if r.state != DragDragging && r.state != DragHovering {
		return false, ErrNoDrag
	}
	if node == nil || !node.Kind.DropTarget() {
		return false, nil
	}
	r.target = node
	r.state = DragHovering
	return true, nil
}

// Cancel aborts the gesture
func (r *Reparenter) Cancel() {
	r.reset()
}

// Drop commits the gesture. It returns the rebuilt forest after a move, or
// nil roots when nothing had to be sent (no target, or dropped on itself).
// The controller is idle again when Drop returns, whatever the outcome.
func (r *Reparenter) Drop(ctx context.Context) ([]*models.TreeNode, error) {
	switch r.state {
	case DragIdle, DragDropped:
		return nil, ErrNoDrag
	case DragDragging:
		// Released outside any target
		r.reset()
		return nil, nil
	}

	r.state = DragDropped
	defer r.reset()

	dragged, target := r.dragged, r.target
	newParentID, noop := ResolveMoveTarget(dragged, target)
	if noop {
		r.logger.Debug("drop on self ignored", "node_id", dragged.ID)
		return nil, nil
	}

	moveErr := func(err error) error {
		return &domain.MoveError{NodeID: dragged.ID, NewParentID: deref(newParentID), Err: err}
	}

	if err := checkMove(dragged, newParentID); err != nil {
		return nil, moveErr(err)
	}

	req := &inventory.MoveLocationRequest{
		NewParentID: newParentID,
		NewOrderIdx: 0,
	}
	if err := r.backend.MoveLocation(ctx, dragged.ID, req); err != nil {
		r.logger.Warn("move rejected",
			"node_id", dragged.ID,
			"new_parent_id", deref(newParentID),
			"error", err,
		)
		return nil, moveErr(err)
	}

	r.logger.Info("node moved",
		"node_id", dragged.ID,
		"new_parent_id", deref(newParentID),
	)

	return r.loader.Build(ctx)
}

func (r *Reparenter) reset() {
	r.state = DragIdle
	r.dragged = nil
	r.target = nil
}

// ResolveMoveTarget applies the move rule for a drop of dragged onto target.
// Dropping on a location nests the node under it. Dropping on an area makes
// the node the area's sibling, since areas cannot contain areas. Dropping a
// node on itself is a no-op.
func ResolveMoveTarget(dragged, target *models.TreeNode) (newParentID *string, noop bool) {
	if dragged.ID == target.ID {
		return nil, true
	}
	if target.Kind == models.KindArea {
		if target.ParentID == nil {
			return nil, false
		}
		return stringPtr(*target.ParentID), false
	}
	return stringPtr(target.ID), false
}

// checkMove refuses a resolved move that would break nesting rules
func checkMove(dragged *models.TreeNode, newParentID *string) error {
	if newParentID == nil {
		if !dragged.Kind.CanBeRoot() {
			return fmt.Errorf("%w: %s cannot be a root", domain.ErrValidation, dragged.Kind)
		}
		return nil
	}
	if *newParentID == dragged.ID {
		return fmt.Errorf("%w: cannot move a node under itself", domain.ErrValidation)
	}

	// Drop targets resolve to a location either way: the target itself or an area's parent
	parentKind := models.KindLocation
	if !parentKind.CanContain(dragged.Kind) {
		return fmt.Errorf("%w: %s cannot contain %s", domain.ErrValidation, parentKind, dragged.Kind)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
