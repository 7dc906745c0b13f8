package assettree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotdash/internal/service/assettree"
	"iotdash/internal/testutil"
)

func TestExpansion_Toggle(t *testing.T) {
	e := assettree.NewExpansion()

	assert.True(t, e.Toggle("a"))
	assert.True(t, e.IsExpanded("a"))
	assert.False(t, e.Toggle("a"))
	assert.False(t, e.IsExpanded("a"))
}

func TestExpansion_CollapseKeepsDescendantState(t *testing.T) {
	e := assettree.NewExpansion("parent", "child")

	e.Collapse("parent")
	assert.False(t, e.IsExpanded("parent"))
	assert.True(t, e.IsExpanded("child"))

	e.Expand("parent")
	assert.Equal(t, []string{"child", "parent"}, e.IDs())
}

func TestExpansion_ExpandAllIsUnion(t *testing.T) {
	e := assettree.NewExpansion("a")
	e.ExpandAll([]string{"b", "a", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, e.IDs())
	assert.Equal(t, 3, e.Len())

	e.CollapseAll()
	assert.Zero(t, e.Len())
}

func TestVisibleRows_RespectsExpansion(t *testing.T) {
	roots := build(t, testutil.FactoryBackend())
	e := assettree.NewExpansion()
	e.ExpandRoots(roots)

	rows := assettree.VisibleRows(roots, e)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Node.ID)
	}
	assert.Equal(t, []string{
		testutil.MainFactoryID, testutil.FloorAID, testutil.FloorBID,
		testutil.LocationXID, testutil.QCID,
	}, ids)

	assert.Equal(t, 0, rows[0].Depth)
	assert.True(t, rows[0].Expanded)
	assert.Equal(t, 1, rows[1].Depth)
	assert.False(t, rows[1].IsLast)
	assert.True(t, rows[2].IsLast)
	assert.False(t, rows[2].Expanded, "Floor B has no children")
	assert.True(t, rows[4].IsLast)

	e.Expand(testutil.FloorAID)
	assert.Len(t, assettree.VisibleRows(roots, e), 6)
}

func TestView_ReloadKeepsSnapshotOnFailure(t *testing.T) {
	backend := testutil.FactoryBackend()
	view := assettree.NewView(assettree.NewBuilder(backend, testutil.Logger()), testutil.Logger())
	ctx := context.Background()

	require.NoError(t, view.Reload(ctx))
	before := view.Roots()
	require.Len(t, before, 2)
	assert.True(t, view.Expansion().IsExpanded(testutil.MainFactoryID))
	assert.False(t, view.Expansion().IsExpanded(testutil.FloorAID))

	backend.DevicesErr = errors.New("timeout")
	require.Error(t, view.Reload(ctx))
	assert.Equal(t, before, view.Roots())
}

func TestView_SearchOpensMatches(t *testing.T) {
	view := assettree.NewView(assettree.NewBuilder(testutil.FactoryBackend(), testutil.Logger()), testutil.Logger())
	require.NoError(t, view.Reload(context.Background()))

	visible := view.Search("Temp1")

	require.Len(t, visible, 1)
	assert.Equal(t, "temp1", view.Term())
	assert.True(t, view.Expansion().IsExpanded(testutil.PLC1ID))

	rows := view.Rows()
	assert.Equal(t, testutil.Temp1ID, rows[len(rows)-1].Node.ID)
	assert.Equal(t, 3, rows[len(rows)-1].Depth)

	view.Search("")
	assert.Len(t, view.Visible(), 2)
	assert.NotNil(t, view.Find(testutil.QCID))
}
