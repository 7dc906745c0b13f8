// Package assettree builds the operator's asset tree from the inventory
// backend and implements the read-side (search, expansion) and write-side
// (reparent, create, delete) operations on it.
package assettree

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	svc "iotdash/internal/domain/services/assettree"
	"iotdash/internal/sample"
)

// Builder merges the location hierarchy, device list and data point list
// into one nested tree. Every call produces a fresh tree.
type Builder struct {
	backend svc.Backend
	logger  *slog.Logger
}

// NewBuilder creates a new tree builder
func NewBuilder(backend svc.Backend, logger *slog.Logger) *Builder {
	return &Builder{
		backend: backend,
		logger:  logger,
	}
}

var _ svc.Loader = (*Builder)(nil)

// Build fetches the three collections and returns the tree roots.
// An empty hierarchy is planted with the default sample and rebuilt once.
func (b *Builder) Build(ctx context.Context) ([]*models.TreeNode, error) {
	roots, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(roots) > 0 {
		return roots, nil
	}

	b.logger.Info("asset hierarchy is empty, planting default sample")
	h, err := sample.Default()
	if err != nil {
		return nil, &domain.LoadError{Source: "seed", Err: err}
	}
	if _, err := PlantHierarchy(ctx, b.backend, h); err != nil {
		return nil, &domain.LoadError{Source: "seed", Err: err}
	}

	return b.load(ctx)
}

// snapshot is the joined result of the three concurrent fetches
type snapshot struct {
	hierarchy  []*inventory.LocationNode
	devices    []inventory.Device
	dataPoints []inventory.DataPoint
}

func (b *Builder) load(ctx context.Context) ([]*models.TreeNode, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hierarchy, err := b.backend.FetchHierarchy(gctx)
		if err != nil {
			return &domain.LoadError{Source: "hierarchy", Err: err}
		}
		snap.hierarchy = hierarchy
		return nil
	})
	g.Go(func() error {
		devices, err := b.backend.FetchDevices(gctx)
		if err != nil {
			return &domain.LoadError{Source: "devices", Err: err}
		}
		snap.devices = devices
		return nil
	})
	g.Go(func() error {
		points, err := b.backend.FetchDataPoints(gctx)
		if err != nil {
			return &domain.LoadError{Source: "data points", Err: err}
		}
		snap.dataPoints = points
		return nil
	})

	// Merge only after all three resolved
	if err := g.Wait(); err != nil {
		var loadErr *domain.LoadError
		if !errors.As(err, &loadErr) {
			err = &domain.LoadError{Source: "fetch", Err: err}
		}
		b.logger.Warn("asset tree load failed", "error", err)
		return nil, err
	}

	return b.merge(&snap), nil
}

// merge assembles the tree in three passes: sites, data points onto
// devices, devices onto sites. Counts are aggregated last.
func (b *Builder) merge(snap *snapshot) []*models.TreeNode {
	sites := make(map[string]*models.TreeNode)

	// First pass: convert the nested hierarchy, indexing every site by id
	roots := make([]*models.TreeNode, 0, len(snap.hierarchy))
	for _, loc := range snap.hierarchy {
		if node := b.convertSite(loc, nil, sites); node != nil {
			roots = append(roots, node)
		}
	}

	// Second pass: data points onto their devices
	devices := make(map[string]*models.TreeNode, len(snap.devices))
	for i := range snap.devices {
		node := deviceNode(&snap.devices[i])
		devices[node.ID] = node
	}

	var orphanPoints []string
	for i := range snap.dataPoints {
		dp := &snap.dataPoints[i]
		device, ok := devices[dp.DeviceID]
		if !ok {
			orphanPoints = append(orphanPoints, dp.ID)
			continue
		}
		device.Children = append(device.Children, dataPointNode(dp))
	}

	// Third pass: devices onto their location or area, in fetch order
	var orphanDevices []string
	for i := range snap.devices {
		node := devices[snap.devices[i].ID]
		parent, ok := sites[snap.devices[i].ParentID()]
		if !ok {
			orphanDevices = append(orphanDevices, node.ID)
			continue
		}
		node.ParentID = stringPtr(parent.ID)
		parent.Children = append(parent.Children, node)
	}

	if len(orphanDevices) > 0 {
		b.logger.Warn("devices without a matching parent", "device_ids", orphanDevices)
	}
	if len(orphanPoints) > 0 {
		b.logger.Warn("data points without a matching device", "data_point_ids", orphanPoints)
	}

	models.AggregateCounts(roots)

	b.logger.Info("asset tree built",
		"site_count", len(sites),
		"device_count", len(snap.devices)-len(orphanDevices),
		"data_point_count", len(snap.dataPoints)-len(orphanPoints),
	)

	return roots
}

// convertSite turns a backend location node and its nested children into
// tree nodes. Duplicate ids are skipped so no node is reachable twice.
func (b *Builder) convertSite(loc *inventory.LocationNode, parent *models.TreeNode, sites map[string]*models.TreeNode) *models.TreeNode {
	if loc == nil {
		return nil
	}
	if _, dup := sites[loc.ID]; dup {
		b.logger.Warn("duplicate location id in hierarchy", "location_id", loc.ID)
		return nil
	}

	kind := models.KindLocation
	if loc.Type == inventory.LocationTypeArea {
		kind = models.KindArea
	}
	if (parent == nil && !kind.CanBeRoot()) || (parent != nil && !parent.Kind.CanContain(kind)) {
		b.logger.Warn("hierarchy node violates nesting rules",
			"location_id", loc.ID,
			"type", loc.Type,
		)
		return nil
	}

	meta := &models.SiteMetadata{
		Address: loc.Address,
		Manager: loc.Manager,
	}
	if loc.Latitude != nil && loc.Longitude != nil {
		meta.Coordinates = &models.Coordinates{Lat: *loc.Latitude, Lng: *loc.Longitude}
	}

	node := &models.TreeNode{
		ID:          loc.ID,
		Kind:        kind,
		Name:        loc.Name,
		Description: loc.Description,
		Status:      models.NormalizeStatus(loc.Status),
		Children:    []*models.TreeNode{},
		Metadata:    meta,
	}
	// Ownership decides the parent id, not the backend's field
	if parent != nil {
		node.ParentID = stringPtr(parent.ID)
	}
	sites[node.ID] = node

	for _, child := range loc.Children {
		if c := b.convertSite(child, node, sites); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

func deviceNode(d *inventory.Device) *models.TreeNode {
	node := &models.TreeNode{
		ID:          d.ID,
		Kind:        models.KindDevice,
		Name:        d.Name,
		Description: d.Description,
		Status:      models.NormalizeStatus(d.Status),
		Children:    []*models.TreeNode{},
		Metadata: &models.DeviceMetadata{
			DeviceType:  d.DeviceType,
			Vendor:      d.Vendor,
			Model:       d.Model,
			Address:     d.Address,
			LastSeen:    d.LastSeen,
			Reliability: d.Reliability,
		},
	}
	node.SetOwnAlerts(d.AlertCount)
	return node
}

func dataPointNode(dp *inventory.DataPoint) *models.TreeNode {
	status := models.StatusActive
	if !dp.Enabled {
		status = models.StatusInactive
	}
	return &models.TreeNode{
		ID:          dp.ID,
		Kind:        models.KindDataPoint,
		Name:        dp.Name,
		Description: dp.Description,
		ParentID:    stringPtr(dp.DeviceID),
		Status:      status,
		Children:    []*models.TreeNode{},
		Metadata: &models.DataPointMetadata{
			Value:    dp.Value,
			Unit:     dp.Unit,
			DataType: dp.DataType,
			Address:  dp.Address,
		},
	}
}

func stringPtr(s string) *string {
	return &s
}
