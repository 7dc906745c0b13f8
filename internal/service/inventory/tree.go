package inventory

import (
	"context"
	"log/slog"

	"iotdash/internal/domain/models/inventory"
	invRepo "iotdash/internal/domain/repositories/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
)

// treeService implements the TreeService interface
type treeService struct {
	locationRepo invRepo.LocationRepository
	logger       *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(locationRepo invRepo.LocationRepository, logger *slog.Logger) invSvc.TreeService {
	return &treeService{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// GetLocationTree builds the nested location/area hierarchy. Siblings keep
// the repository's order_index, created_at order.
func (s *treeService) GetLocationTree(ctx context.Context) ([]*inventory.LocationNode, error) {
	all, err := s.locationRepo.List(ctx, invRepo.LocationFilter{})
	if err != nil {
		return nil, err
	}

	// First pass: create all nodes
	nodes := make(map[string]*inventory.LocationNode, len(all))
	for i := range all {
		loc := &all[i]
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

	// Second pass: connect children to parents in list order
	roots := make([]*inventory.LocationNode, 0)
	var orphans []string
	for i := range all {
		loc := &all[i]
		node := nodes[loc.ID]
		if loc.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*loc.ParentID]
		if !ok {
			orphans = append(orphans, loc.ID)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	if len(orphans) > 0 {
		s.logger.Warn("locations with a missing parent", "location_ids", orphans)
	}

	s.logger.Debug("location tree built",
		"location_count", len(all),
		"root_count", len(roots),
	)

	return roots, nil
}
