package inventory

import (
	"context"
	"fmt"
	"slices"

	"iotdash/internal/domain"
	"iotdash/internal/domain/models/inventory"
	"iotdash/internal/domain/repositories"
	invRepo "iotdash/internal/domain/repositories/inventory"
)

// memStore backs the three fake repositories
type memStore struct {
	locations  []*inventory.Location
	devices    []inventory.Device
	dataPoints []inventory.DataPoint
}

type mockLocationRepo struct{ store *memStore }

func (m *mockLocationRepo) Create(ctx context.Context, loc *inventory.Location) error {
	cp := *loc
	m.store.locations = append(m.store.locations, &cp)
	return nil
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id string) (*inventory.Location, error) {
	for _, loc := range m.store.locations {
		if loc.ID == id {
			cp := *loc
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", id)}
}

func (m *mockLocationRepo) Update(ctx context.Context, loc *inventory.Location) error {
	for i, existing := range m.store.locations {
		if existing.ID == loc.ID {
			cp := *loc
			m.store.locations[i] = &cp
			return nil
		}
	}
	return &domain.NotFoundError{Message: "not found"}
}

func (m *mockLocationRepo) List(ctx context.Context, filter invRepo.LocationFilter) ([]inventory.Location, error) {
	out := make([]inventory.Location, 0)
	for _, loc := range m.store.locations {
		if filter.RootsOnly && loc.ParentID != nil {
			continue
		}
		if filter.ParentID != nil && (loc.ParentID == nil || *loc.ParentID != *filter.ParentID) {
			continue
		}
		if filter.Type != nil && loc.Type != *filter.Type {
			continue
		}
		out = append(out, *loc)
	}
	slices.SortStableFunc(out, func(a, b inventory.Location) int { return a.OrderIndex - b.OrderIndex })
	return out, nil
}

func (m *mockLocationRepo) SubtreeIDs(ctx context.Context, id string) ([]string, error) {
	if _, err := m.GetByID(ctx, id); err != nil {
		return nil, err
	}
	ids := []string{id}
	for i := 0; i < len(ids); i++ {
		for _, loc := range m.store.locations {
			if loc.ParentID != nil && *loc.ParentID == ids[i] {
				ids = append(ids, loc.ID)
			}
		}
	}
	return ids, nil
}

func (m *mockLocationRepo) ShiftSiblings(ctx context.Context, parentID *string, fromIndex int, excludeID string) error {
	for _, loc := range m.store.locations {
		if loc.ID != excludeID && sameParent(loc.ParentID, parentID) && loc.OrderIndex >= fromIndex {
			loc.OrderIndex++
		}
	}
	return nil
}

func (m *mockLocationRepo) NextOrderIndex(ctx context.Context, parentID *string) (int, error) {
	next := 0
	for _, loc := range m.store.locations {
		if sameParent(loc.ParentID, parentID) && loc.OrderIndex >= next {
			next = loc.OrderIndex + 1
		}
	}
	return next, nil
}

func (m *mockLocationRepo) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	before := len(m.store.locations)
	m.store.locations = slices.DeleteFunc(m.store.locations, func(loc *inventory.Location) bool {
		return slices.Contains(ids, loc.ID)
	})
	return before - len(m.store.locations), nil
}

func (m *mockLocationRepo) Stats(ctx context.Context) (*inventory.LocationStats, error) {
	stats := &inventory.LocationStats{Total: len(m.store.locations)}
	for _, loc := range m.store.locations {
		if loc.Type == inventory.LocationTypeArea {
			stats.Areas++
		} else {
			stats.Locations++
		}
	}
	return stats, nil
}

type mockDeviceRepo struct{ store *memStore }

func (m *mockDeviceRepo) Create(ctx context.Context, d *inventory.Device) error {
	m.store.devices = append(m.store.devices, *d)
	return nil
}

func (m *mockDeviceRepo) List(ctx context.Context, filter inventory.DeviceFilter) ([]inventory.Device, error) {
	out := make([]inventory.Device, 0)
	for _, d := range m.store.devices {
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDeviceRepo) IDsByParents(ctx context.Context, parentIDs []string) ([]string, error) {
	var ids []string
	for _, d := range m.store.devices {
		if (d.LocationID != nil && slices.Contains(parentIDs, *d.LocationID)) ||
			(d.AreaID != nil && slices.Contains(parentIDs, *d.AreaID)) {
			ids = append(ids, d.ID)
		}
	}
	return ids, nil
}

func (m *mockDeviceRepo) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	before := len(m.store.devices)
	m.store.devices = slices.DeleteFunc(m.store.devices, func(d inventory.Device) bool {
		return slices.Contains(ids, d.ID)
	})
	return before - len(m.store.devices), nil
}

type mockDataPointRepo struct{ store *memStore }

func (m *mockDataPointRepo) Create(ctx context.Context, dp *inventory.DataPoint) error {
	m.store.dataPoints = append(m.store.dataPoints, *dp)
	return nil
}

func (m *mockDataPointRepo) List(ctx context.Context, deviceID *string) ([]inventory.DataPoint, error) {
	out := make([]inventory.DataPoint, 0)
	for _, dp := range m.store.dataPoints {
		if deviceID == nil || dp.DeviceID == *deviceID {
			out = append(out, dp)
		}
	}
	return out, nil
}

func (m *mockDataPointRepo) DeleteByDeviceIDs(ctx context.Context, deviceIDs []string) (int, error) {
	before := len(m.store.dataPoints)
	m.store.dataPoints = slices.DeleteFunc(m.store.dataPoints, func(dp inventory.DataPoint) bool {
		return slices.Contains(deviceIDs, dp.DeviceID)
	})
	return before - len(m.store.dataPoints), nil
}

// mockTxManager runs fn inline and counts transactions
type mockTxManager struct{ calls int }

func (m *mockTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
