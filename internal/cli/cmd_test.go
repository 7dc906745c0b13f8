package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotdash/internal/domain"
	"iotdash/internal/testutil"
)

// testApp wires an App against the in-memory factory backend
func testApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.FactoryBackend()
	return &App{
		Backend:       backend,
		Logger:        testutil.Logger(),
		IsInteractive: func() bool { return false },
	}, backend
}

// executeCmd runs a cobra command and captures stdout/stderr
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- tree ---

func TestTreeCmd_RootsExpanded(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "tree")

	require.NoError(t, err)
	assert.Contains(t, out, "Main Factory")
	assert.Contains(t, out, "Floor A")
	assert.Contains(t, out, "QC")
	assert.NotContains(t, out, "PLC1")
	assert.Contains(t, out, "2 locations, 3 areas, 1 device, 2 data points")
}

func TestTreeCmd_ExpandAll(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "tree", "--expand-all")

	require.NoError(t, err)
	assert.Contains(t, out, "PLC1")
	assert.Contains(t, out, "Pressure1")
	assert.Contains(t, out, "1 device · 1 active")
}

func TestTreeCmd_Search(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "tree", "--search", "TEMP")

	require.NoError(t, err)
	assert.Contains(t, out, "Main Factory")
	assert.Contains(t, out, "Floor A")
	assert.Contains(t, out, "PLC1")
	assert.Contains(t, out, "Temp1")
	assert.NotContains(t, out, "Floor B")
	assert.NotContains(t, out, "Pressure1")
	assert.NotContains(t, out, "Location X")
}

func TestTreeCmd_SearchNoMatch(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "tree", "-s", "boiler")

	require.NoError(t, err)
	assert.Contains(t, out, `No nodes match "boiler"`)
}

func TestTreeCmd_LoadFailure(t *testing.T) {
	app, backend := testApp(t)
	backend.DevicesErr = errors.New("connection refused")

	_, err := executeCmd(t, app, "tree")

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "devices", loadErr.Source)
}

// --- create ---

func TestCreateCmd_Area(t *testing.T) {
	app, backend := testApp(t)

	out, err := executeCmd(t, app, "create", "Floor C", "--type", "area", "--parent", testutil.MainFactoryID)

	require.NoError(t, err)
	assert.Contains(t, out, `Created area "Floor C"`)
	assert.Contains(t, out, "2 locations, 4 areas")
	assert.Equal(t, 6, backend.LocationCount())
}

func TestCreateCmd_AreaWithoutParent(t *testing.T) {
	app, backend := testApp(t)

	_, err := executeCmd(t, app, "create", "Floor C", "--type", "area")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 0, backend.CreateCalls)
}

// --- move ---

func TestMoveCmd_OntoLocation(t *testing.T) {
	app, backend := testApp(t)

	out, err := executeCmd(t, app, "move", testutil.FloorBID, "--onto", testutil.LocationXID)

	require.NoError(t, err)
	assert.Contains(t, out, `Moved "Floor B" under "Location X"`)
	require.Len(t, backend.Moves, 1)
	assert.Equal(t, testutil.LocationXID, *backend.Moves[0].Req.NewParentID)
}

func TestMoveCmd_OntoAreaBecomesSibling(t *testing.T) {
	app, backend := testApp(t)

	out, err := executeCmd(t, app, "move", testutil.FloorAID, "--onto", testutil.QCID)

	require.NoError(t, err)
	assert.Contains(t, out, `under "Location X"`)
	require.Len(t, backend.Moves, 1)
	assert.Equal(t, testutil.LocationXID, *backend.Moves[0].Req.NewParentID)
}

func TestMoveCmd_LocationUnderLocationRejected(t *testing.T) {
	app, backend := testApp(t)

	_, err := executeCmd(t, app, "move", testutil.MainFactoryID, "--onto", testutil.LocationXID)

	var moveErr *domain.MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 0, backend.MoveCalls)
}

func TestMoveCmd_DeviceIsNotATarget(t *testing.T) {
	app, backend := testApp(t)

	_, err := executeCmd(t, app, "move", testutil.FloorBID, "--onto", testutil.PLC1ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a drop target")
	assert.Equal(t, 0, backend.MoveCalls)
}

func TestMoveCmd_OntoSelf(t *testing.T) {
	app, backend := testApp(t)

	out, err := executeCmd(t, app, "move", testutil.FloorAID, "--onto", testutil.FloorAID)

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to move")
	assert.Equal(t, 0, backend.MoveCalls)
}

func TestMoveCmd_UnknownNode(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "move", "ghost", "--onto", testutil.LocationXID)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- delete ---

func TestDeleteCmd_NeedsConfirmation(t *testing.T) {
	app, backend := testApp(t)

	_, err := executeCmd(t, app, "delete", testutil.FloorAID)

	assert.ErrorIs(t, err, errNotConfirmed)
	assert.Equal(t, 0, backend.DeleteCalls)
}

func TestDeleteCmd_ConfirmDeclined(t *testing.T) {
	app, backend := testApp(t)
	app.IsInteractive = func() bool { return true }
	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, app, "delete", testutil.FloorAID)

	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Equal(t, `Delete area "Floor A" and 3 nodes below it?`, asked)
	assert.Equal(t, 0, backend.DeleteCalls)
}

func TestDeleteCmd_Yes(t *testing.T) {
	app, backend := testApp(t)

	out, err := executeCmd(t, app, "delete", testutil.MainFactoryID, "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, `Deleted location "Main Factory"`)
	assert.Contains(t, out, "1 location, 1 area, 0 devices, 0 data points")
	assert.Equal(t, 1, backend.DeleteCalls)
	assert.Equal(t, 2, backend.LocationCount())
}

func TestDeleteCmd_DeviceRefused(t *testing.T) {
	app, backend := testApp(t)

	_, err := executeCmd(t, app, "delete", testutil.PLC1ID, "--yes")

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 0, backend.DeleteCalls)
}

// --- settings ---

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := LoadSettings("", nil)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", s.APIURL)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Empty(t, s.Token)
}

func TestLoadSettings_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://plant:9000/api\ntoken: from-file\ntimeout: 5s\n"), 0o600))

	s, err := LoadSettings(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://plant:9000/api", s.APIURL)
	assert.Equal(t, "from-file", s.Token)
	assert.Equal(t, 5*time.Second, s.Timeout)

	t.Setenv("ASSETTREE_TOKEN", "from-env")
	s, err = LoadSettings(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.Token)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.String("token", "", "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://override/api"}))

	s, err = LoadSettings(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://override/api", s.APIURL)
	assert.Equal(t, "from-env", s.Token)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
