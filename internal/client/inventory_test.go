package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	"iotdash/internal/httputil"
	"iotdash/internal/service/assettree"
	"iotdash/internal/testutil"
)

const treeJSON = `[
  {"id":"loc-main","name":"Main Factory","type":"location","parent_id":null,"status":"active","order_index":0,
   "children":[{"id":"area-a","name":"Production Floor A","type":"area","parent_id":"loc-main","status":"active","order_index":0,"children":[]}]}
]`

const devicesJSON = `[
  {"id":"dev-plc1","name":"PLC 1","device_type":"plc","location_id":null,"area_id":"area-a","status":"online","alert_count":2}
]`

const dataPointsJSON = `[
  {"id":"dp-temp1","device_id":"dev-plc1","name":"Temperature","data_type":"float","enabled":true}
]`

// fakeAPI serves canned inventory responses and records the last write
type fakeAPI struct {
	lastMethod string
	lastPath   string
	lastBody   []byte
	lastAuth   string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	raw := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.lastAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, body)
		}
	}
	record := func(r *http.Request) {
		f.lastMethod, f.lastPath = r.Method, r.URL.Path
		f.lastBody, _ = io.ReadAll(r.Body)
		f.lastAuth = r.Header.Get("Authorization")
	}

	mux.Handle("GET /api/locations/tree", raw(treeJSON))
	mux.Handle("GET /api/devices", raw(devicesJSON))
	mux.Handle("GET /api/data-points", raw(dataPointsJSON))
	mux.HandleFunc("POST /api/locations", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var req inventory.CreateLocationRequest
		_ = json.Unmarshal(f.lastBody, &req)
		if req.Name == "dup" {
			httputil.RespondErrorWithExtras(w, http.StatusConflict, "location 'dup' already exists",
				map[string]interface{}{"resource_type": "location", "resource_id": "loc-dup"})
			return
		}
		httputil.RespondJSON(w, http.StatusCreated, inventory.Location{ID: "loc-new", Name: req.Name, Type: req.Type})
	})
	mux.HandleFunc("POST /api/locations/{id}/move", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("id") == "loc-main" {
			httputil.RespondError(w, http.StatusBadRequest, "location cannot contain location")
			return
		}
		httputil.RespondJSON(w, http.StatusOK, inventory.MoveLocationResponse{Success: true})
	})
	mux.HandleFunc("DELETE /api/locations/{id}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("id") == "missing" {
			httputil.RespondError(w, http.StatusNotFound, "location missing not found")
			return
		}
		httputil.RespondJSON(w, http.StatusOK, inventory.DeleteLocationResponse{Success: true, DeletedLocations: 1})
	})
	return mux
}

func newTestClient(t *testing.T) (*InventoryClient, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return NewInventoryClient(srv.URL+"/api/", "secret", time.Second), api
}

func TestFetch(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	tree, err := c.FetchHierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Production Floor A", tree[0].Children[0].Name)
	assert.Equal(t, "Bearer secret", api.lastAuth)

	devices, err := c.FetchDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "area-a", devices[0].ParentID())

	points, err := c.FetchDataPoints(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "dev-plc1", points[0].DeviceID)
}

func TestCreateLocation(t *testing.T) {
	c, api := newTestClient(t)
	parent := "loc-main"

	loc, err := c.CreateLocation(context.Background(), &inventory.CreateLocationRequest{
		Name: "Floor C", Type: inventory.LocationTypeArea, ParentID: &parent,
	})

	require.NoError(t, err)
	assert.Equal(t, "loc-new", loc.ID)
	assert.Equal(t, "/api/locations", api.lastPath)
	assert.Contains(t, string(api.lastBody), `"parent_id":"loc-main"`)
}

func TestCreateLocation_Conflict(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.CreateLocation(context.Background(), &inventory.CreateLocationRequest{Name: "dup", Type: inventory.LocationTypeLocation})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "loc-dup", conflict.ResourceID)
}

func TestMoveLocation(t *testing.T) {
	c, api := newTestClient(t)
	parent := "loc-x"

	err := c.MoveLocation(context.Background(), "area-a", &inventory.MoveLocationRequest{NewParentID: &parent})

	require.NoError(t, err)
	assert.Equal(t, "/api/locations/area-a/move", api.lastPath)
	assert.JSONEq(t, `{"new_parent_id":"loc-x","new_order_index":0}`, string(api.lastBody))

	err = c.MoveLocation(context.Background(), "loc-main", &inventory.MoveLocationRequest{NewParentID: &parent})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "cannot contain")
}

func TestDeleteLocation(t *testing.T) {
	c, api := newTestClient(t)

	require.NoError(t, c.DeleteLocation(context.Background(), "area-a"))
	assert.Equal(t, http.MethodDelete, api.lastMethod)

	err := c.DeleteLocation(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStatusError(t *testing.T) {
	err := statusError(http.StatusBadGateway, []byte("upstream down"))
	assert.EqualError(t, err, "API error (status 502): upstream down")

	err = statusError(http.StatusForbidden, nil)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = statusError(http.StatusUnauthorized, []byte(`{"detail":"invalid token"}`))
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.EqualError(t, err, "invalid token")
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewInventoryClient(url, "", 100*time.Millisecond)
	_, err := c.FetchHierarchy(context.Background())
	require.Error(t, err)
}

func TestBuilderOverHTTP(t *testing.T) {
	c, _ := newTestClient(t)
	builder := assettree.NewBuilder(c, testutil.Logger())

	roots, err := builder.Build(context.Background())

	require.NoError(t, err)
	require.NoError(t, models.Validate(roots))
	require.Len(t, roots, 1)

	area := models.Find(roots, "area-a")
	require.NotNil(t, area)
	require.Len(t, area.Children, 1)
	plc := area.Children[0]
	assert.Equal(t, models.KindDevice, plc.Kind)
	assert.Equal(t, models.StatusActive, plc.Status)
	require.Len(t, plc.Children, 1)
	assert.Equal(t, models.KindDataPoint, plc.Children[0].Kind)

	assert.Equal(t, 1, roots[0].DeviceCount)
	assert.Equal(t, 2, roots[0].AlertCount)
}
