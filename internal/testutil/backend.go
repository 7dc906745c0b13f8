// Package testutil holds in-memory fakes and fixtures shared by tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"iotdash/internal/domain"
	"iotdash/internal/domain/models/inventory"
)

// MoveCall records one MoveLocation request
type MoveCall struct {
	ID  string
	Req inventory.MoveLocationRequest
}

// FakeBackend is an in-memory inventory backend. Fetches may run
// concurrently; all state is guarded by mu.
type FakeBackend struct {
	mu sync.Mutex

	locations  []*inventory.Location
	devices    []inventory.Device
	dataPoints []inventory.DataPoint
	nextID     int

	// Injected failures
	HierarchyErr  error
	DevicesErr    error
	DataPointsErr error
	CreateErr     error
	MoveErr       error
	DeleteErr     error

	// Call counters
	HierarchyCalls int
	CreateCalls    int
	MoveCalls      int
	DeleteCalls    int
	Moves          []MoveCall
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

// AddLocation stores a location ("location" or "area"); parentID may be empty
func (f *FakeBackend) AddLocation(id, name string, typ inventory.LocationType, parentID string) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()

	loc := &inventory.Location{
		ID:         id,
		Name:       name,
		Type:       typ,
		Status:     "active",
		OrderIndex: f.siblingCount(ptrOrNil(parentID)),
		CreatedAt:  time.Now(),
	}
	loc.ParentID = ptrOrNil(parentID)
	f.locations = append(f.locations, loc)
	return f
}

// AddDevice stores a device under parentID. The parent's type decides
// whether location_id or area_id is set.
func (f *FakeBackend) AddDevice(id, name, parentID, status string) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := inventory.Device{ID: id, Name: name, DeviceType: "plc", Status: status}
	if parent := f.find(parentID); parent != nil && parent.Type == inventory.LocationTypeArea {
		d.AreaID = ptrOrNil(parentID)
	} else {
		d.LocationID = ptrOrNil(parentID)
	}
	f.devices = append(f.devices, d)
	return f
}

// AddRawDevice stores a device exactly as given
func (f *FakeBackend) AddRawDevice(d inventory.Device) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices = append(f.devices, d)
	return f
}

// AddDataPoint stores an enabled data point on deviceID
func (f *FakeBackend) AddDataPoint(id, name, deviceID string) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataPoints = append(f.dataPoints, inventory.DataPoint{
		ID:       id,
		DeviceID: deviceID,
		Name:     name,
		DataType: "float",
		Enabled:  true,
	})
	return f
}

// Location returns a copy of the stored location, or nil
func (f *FakeBackend) Location(id string) *inventory.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loc := f.find(id); loc != nil {
		cp := *loc
		return &cp
	}
	return nil
}

// LocationCount returns the number of stored locations and areas
func (f *FakeBackend) LocationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.locations)
}

func (f *FakeBackend) FetchHierarchy(ctx context.Context) ([]*inventory.LocationNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HierarchyCalls++
	if f.HierarchyErr != nil {
		return nil, f.HierarchyErr
	}

	nodes := make(map[string]*inventory.LocationNode, len(f.locations))
	for _, loc := range f.locations {
		nodes[loc.ID] = &inventory.LocationNode{
			ID:          loc.ID,
			Name:        loc.Name,
			Description: loc.Description,
			Type:        loc.Type,
			ParentID:    loc.ParentID,
			Address:     loc.Address,
			Manager:     loc.Manager,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			Status:      loc.Status,
			OrderIndex:  loc.OrderIndex,
			Children:    []*inventory.LocationNode{},
		}
	}

	ordered := slices.Clone(f.locations)
	slices.SortStableFunc(ordered, func(a, b *inventory.Location) int {
		return a.OrderIndex - b.OrderIndex
	})

	roots := make([]*inventory.LocationNode, 0)
	for _, loc := range ordered {
		node := nodes[loc.ID]
		if loc.ParentID == nil {
			roots = append(roots, node)
		} else if parent, ok := nodes[*loc.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots, nil
}

func (f *FakeBackend) FetchDevices(ctx context.Context) ([]inventory.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DevicesErr != nil {
		return nil, f.DevicesErr
	}
	return slices.Clone(f.devices), nil
}

func (f *FakeBackend) FetchDataPoints(ctx context.Context) ([]inventory.DataPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DataPointsErr != nil {
		return nil, f.DataPointsErr
	}
	return slices.Clone(f.dataPoints), nil
}

func (f *FakeBackend) CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	if req.ParentID != nil && f.find(*req.ParentID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent location %s not found", *req.ParentID)}
	}

	f.nextID++
	loc := &inventory.Location{
		ID:          fmt.Sprintf("loc-%d", f.nextID),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ParentID:    req.ParentID,
		Address:     req.Address,
		Manager:     req.Manager,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      "active",
		OrderIndex:  f.siblingCount(req.ParentID),
		CreatedAt:   time.Now(),
	}
	f.locations = append(f.locations, loc)

	cp := *loc
	return &cp, nil
}

func (f *FakeBackend) MoveLocation(ctx context.Context, id string, req *inventory.MoveLocationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MoveCalls++
	f.Moves = append(f.Moves, MoveCall{ID: id, Req: *req})
	if f.MoveErr != nil {
		return f.MoveErr
	}

	loc := f.find(id)
	if loc == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", id)}
	}

	// Insert at the requested index, shifting later siblings down
	for _, sibling := range f.locations {
		if sibling.ID != id && sameParent(sibling.ParentID, req.NewParentID) && sibling.OrderIndex >= req.NewOrderIdx {
			sibling.OrderIndex++
		}
	}
	loc.ParentID = req.NewParentID
	loc.OrderIndex = req.NewOrderIdx
	return nil
}

func (f *FakeBackend) DeleteLocation(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if f.find(id) == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", id)}
	}

	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, loc := range f.locations {
			if !doomed[loc.ID] && loc.ParentID != nil && doomed[*loc.ParentID] {
				doomed[loc.ID] = true
				changed = true
			}
		}
	}

	deadDevices := make(map[string]bool)
	f.devices = slices.DeleteFunc(f.devices, func(d inventory.Device) bool {
		if doomed[d.ParentID()] {
			deadDevices[d.ID] = true
			return true
		}
		return false
	})
	f.dataPoints = slices.DeleteFunc(f.dataPoints, func(dp inventory.DataPoint) bool {
		return deadDevices[dp.DeviceID]
	})
	f.locations = slices.DeleteFunc(f.locations, func(loc *inventory.Location) bool {
		return doomed[loc.ID]
	})
	return nil
}

func (f *FakeBackend) find(id string) *inventory.Location {
	for _, loc := range f.locations {
		if loc.ID == id {
			return loc
		}
	}
	return nil
}

func (f *FakeBackend) siblingCount(parentID *string) int {
	n := 0
	for _, loc := range f.locations {
		if sameParent(loc.ParentID, parentID) {
			n++
		}
	}
	return n
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Logger returns a logger that discards everything
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
