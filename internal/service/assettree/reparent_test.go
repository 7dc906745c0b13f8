package assettree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/service/assettree"
	"iotdash/internal/testutil"
)

type reparentFixture struct {
	backend    *testutil.FakeBackend
	reparenter *assettree.Reparenter
	roots      []*models.TreeNode
}

func newReparentFixture(t *testing.T) *reparentFixture {
	t.Helper()
	backend := testutil.FactoryBackend()
	builder := assettree.NewBuilder(backend, testutil.Logger())
	roots, err := builder.Build(context.Background())
	require.NoError(t, err)
	return &reparentFixture{
		backend:    backend,
		reparenter: assettree.NewReparenter(backend, builder, testutil.Logger()),
		roots:      roots,
	}
}

func (f *reparentFixture) node(id string) *models.TreeNode {
	return models.Find(f.roots, id)
}

func (f *reparentFixture) drag(t *testing.T, fromID, ontoID string) ([]*models.TreeNode, error) {
	t.Helper()
	require.NoError(t, f.reparenter.BeginDrag(f.node(fromID)))
	accepted, err := f.reparenter.Hover(f.node(ontoID))
	require.NoError(t, err)
	require.True(t, accepted)
	return f.reparenter.Drop(context.Background())
}

func TestResolveMoveTarget(t *testing.T) {
	f := newReparentFixture(t)

	t.Run("location target nests", func(t *testing.T) {
		parent, noop := assettree.ResolveMoveTarget(f.node(testutil.QCID), f.node(testutil.MainFactoryID))
		assert.False(t, noop)
		require.NotNil(t, parent)
		assert.Equal(t, testutil.MainFactoryID, *parent)
	})

	t.Run("area target makes a sibling", func(t *testing.T) {
		parent, noop := assettree.ResolveMoveTarget(f.node(testutil.FloorAID), f.node(testutil.QCID))
		assert.False(t, noop)
		require.NotNil(t, parent)
		assert.Equal(t, testutil.LocationXID, *parent)
	})

	t.Run("self is a no-op", func(t *testing.T) {
		_, noop := assettree.ResolveMoveTarget(f.node(testutil.FloorAID), f.node(testutil.FloorAID))
		assert.True(t, noop)
	})
}

func TestDrop_AreaOntoLocation(t *testing.T) {
	f := newReparentFixture(t)

	roots, err := f.drag(t, testutil.QCID, testutil.MainFactoryID)
	require.NoError(t, err)

	require.Len(t, f.backend.Moves, 1)
	move := f.backend.Moves[0]
	assert.Equal(t, testutil.QCID, move.ID)
	assert.Equal(t, testutil.MainFactoryID, *move.Req.NewParentID)
	assert.Equal(t, 0, move.Req.NewOrderIdx)

	// Rebuilt, inserted first
	assert.Equal(t, testutil.QCID, roots[0].Children[0].ID)
	assert.Equal(t, assettree.DragIdle, f.reparenter.State())
}

func TestDrop_AreaOntoAreaBecomesSibling(t *testing.T) {
	f := newReparentFixture(t)
	// Put QC next to Floor A first
	_, err := f.drag(t, testutil.QCID, testutil.MainFactoryID)
	require.NoError(t, err)
	f.roots, err = assettree.NewBuilder(f.backend, testutil.Logger()).Build(context.Background())
	require.NoError(t, err)

	roots, err := f.drag(t, testutil.FloorAID, testutil.QCID)
	require.NoError(t, err)

	move := f.backend.Moves[1]
	assert.Equal(t, testutil.FloorAID, move.ID)
	assert.Equal(t, testutil.MainFactoryID, *move.Req.NewParentID)

	floorA := models.Find(roots, testutil.FloorAID)
	assert.Equal(t, testutil.MainFactoryID, *floorA.ParentID)
	assert.Empty(t, models.Find(roots, testutil.QCID).Children)
}

func TestDrop_OnSelfMakesNoCall(t *testing.T) {
	f := newReparentFixture(t)

	roots, err := f.drag(t, testutil.FloorAID, testutil.FloorAID)

	require.NoError(t, err)
	assert.Nil(t, roots)
	assert.Zero(t, f.backend.MoveCalls)
	assert.Equal(t, assettree.DragIdle, f.reparenter.State())
}

func TestDrag_DevicesAndDataPointsNeverOffered(t *testing.T) {
	f := newReparentFixture(t)

	for _, id := range []string{testutil.PLC1ID, testutil.Temp1ID} {
		err := f.reparenter.BeginDrag(f.node(id))
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, assettree.DragIdle, f.reparenter.State())
	}

	require.NoError(t, f.reparenter.BeginDrag(f.node(testutil.FloorAID)))
	for _, id := range []string{testutil.PLC1ID, testutil.Temp1ID} {
		accepted, err := f.reparenter.Hover(f.node(id))
		require.NoError(t, err)
		assert.False(t, accepted)
	}
	assert.Equal(t, assettree.DragDragging, f.reparenter.State())
	assert.Nil(t, f.reparenter.Target())
}

func TestDrag_StateMachine(t *testing.T) {
	f := newReparentFixture(t)
	r := f.reparenter

	_, err := r.Hover(f.node(testutil.MainFactoryID))
	assert.ErrorIs(t, err, assettree.ErrNoDrag)
	_, err = r.Drop(context.Background())
	assert.ErrorIs(t, err, assettree.ErrNoDrag)

	require.NoError(t, r.BeginDrag(f.node(testutil.FloorAID)))
	assert.ErrorIs(t, r.BeginDrag(f.node(testutil.FloorBID)), assettree.ErrDragInProgress)

	_, err = r.Hover(f.node(testutil.MainFactoryID))
	require.NoError(t, err)
	_, err = r.Hover(f.node(testutil.LocationXID))
	require.NoError(t, err)
	assert.Equal(t, assettree.DragHovering, r.State())
	assert.Equal(t, testutil.LocationXID, r.Target().ID)

	r.Cancel()
	assert.Equal(t, assettree.DragIdle, r.State())
	assert.Nil(t, r.Dragged())

	// Released outside any target
	require.NoError(t, r.BeginDrag(f.node(testutil.FloorAID)))
	roots, err := r.Drop(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, roots)
	assert.Zero(t, f.backend.MoveCalls)
}

func TestDrop_BackendFailureIsMoveError(t *testing.T) {
	f := newReparentFixture(t)
	f.backend.MoveErr = errors.New("conflict")
	callsBefore := f.backend.HierarchyCalls

	roots, err := f.drag(t, testutil.QCID, testutil.MainFactoryID)

	assert.Nil(t, roots)
	var moveErr *domain.MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, testutil.QCID, moveErr.NodeID)
	assert.Equal(t, testutil.MainFactoryID, moveErr.NewParentID)
	assert.Equal(t, assettree.DragIdle, f.reparenter.State())
	assert.Equal(t, callsBefore, f.backend.HierarchyCalls, "no reload after a failed move")
}

// Locations stay at the top level: any drop resolves to a location parent
func TestDrop_LocationNeverNests(t *testing.T) {
	tests := []struct {
		name       string
		onto       string
		wantParent string
	}{
		{"onto a location", testutil.MainFactoryID, testutil.MainFactoryID},
		{"onto an area", testutil.FloorAID, testutil.MainFactoryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReparentFixture(t)

			roots, err := f.drag(t, testutil.LocationXID, tt.onto)

			assert.Nil(t, roots)
			var moveErr *domain.MoveError
			require.ErrorAs(t, err, &moveErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, testutil.LocationXID, moveErr.NodeID)
			assert.Equal(t, tt.wantParent, moveErr.NewParentID)
			assert.Contains(t, err.Error(), "location cannot contain location")
			assert.Zero(t, f.backend.MoveCalls)
			assert.Equal(t, assettree.DragIdle, f.reparenter.State())
		})
	}
}

func TestDragState_String(t *testing.T) {
	assert.Equal(t, "idle", assettree.DragIdle.String())
	assert.Equal(t, "dropped", assettree.DragDropped.String())
	assert.Equal(t, "DragState(9)", assettree.DragState(9).String())
}
