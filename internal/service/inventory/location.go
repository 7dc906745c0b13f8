// Package inventory implements the location, tree and device services behind
// the inventory REST API.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	"iotdash/internal/domain/repositories"
	invRepo "iotdash/internal/domain/repositories/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
)

type locationService struct {
	locationRepo  invRepo.LocationRepository
	deviceRepo    invRepo.DeviceRepository
	dataPointRepo invRepo.DataPointRepository
	txManager     repositories.TransactionManager
	sanitizer     *TextSanitizer
	logger        *slog.Logger
}

// NewLocationService creates a new location service
func NewLocationService(
	locationRepo invRepo.LocationRepository,
	deviceRepo invRepo.DeviceRepository,
	dataPointRepo invRepo.DataPointRepository,
	txManager repositories.TransactionManager,
	sanitizer *TextSanitizer,
	logger *slog.Logger,
) invSvc.LocationService {
	return &locationService{
		locationRepo:  locationRepo,
		deviceRepo:    deviceRepo,
		dataPointRepo: dataPointRepo,
		txManager:     txManager,
		sanitizer:     sanitizer,
		logger:        logger,
	}
}

// CreateLocation creates a location or area at the end of its siblings
func (s *locationService) CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error) {
	req.ParentID = normalizeParentID(req.ParentID)

	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := s.sanitizer.Sanitize(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name: cannot be blank")
	}

	if err := s.checkPlacement(ctx, req.Type, req.ParentID, ""); err != nil {
		return nil, err
	}

	orderIndex, err := s.locationRepo.NextOrderIndex(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	now := time.Now()
	loc := &inventory.Location{
		ID:          uuid.NewString(),
		Name:        name,
		Description: s.sanitizer.Sanitize(req.Description),
		Type:        req.Type,
		ParentID:    req.ParentID,
		Address:     s.sanitizer.Sanitize(req.Address),
		Manager:     s.sanitizer.Sanitize(req.Manager),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Metadata:    metadata,
		Status:      string(models.StatusActive),
		OrderIndex:  orderIndex,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}

	s.logger.Info("location created",
		"id", loc.ID,
		"name", loc.Name,
		"type", loc.Type,
		"parent_id", valueOf(loc.ParentID),
	)

	return loc, nil
}

func (s *locationService) GetLocation(ctx context.Context, id string) (*inventory.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

// ListLocations returns a flat, ordered list
func (s *locationService) ListLocations(ctx context.Context, query *invSvc.LocationQuery) ([]inventory.Location, error) {
	var filter invRepo.LocationFilter
	if query != nil {
		if query.ParentID != nil {
			if p := *query.ParentID; p == "" || p == "null" {
				filter.RootsOnly = true
			} else {
				filter.ParentID = &p
			}
		}
		if query.Type != nil {
			typ := inventory.LocationType(*query.Type)
			if typ != inventory.LocationTypeLocation && typ != inventory.LocationTypeArea {
				return nil, domain.NewValidationError("type: must be location or area")
			}
			filter.Type = &typ
		}
	}
	return s.locationRepo.List(ctx, filter)
}

// ListChildren returns the direct children of id
func (s *locationService) ListChildren(ctx context.Context, id string) ([]inventory.Location, error) {
	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.locationRepo.List(ctx, invRepo.LocationFilter{ParentID: &id})
}

// UpdateLocation applies the fields present in req
func (s *locationService) UpdateLocation(ctx context.Context, id string, req *inventory.UpdateLocationRequest) (*inventory.Location, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := s.sanitizer.Sanitize(*req.Name)
		if name == "" {
			return nil, domain.NewValidationError("name: cannot be blank")
		}
		loc.Name = name
	}
	// Tri-state: absent fields keep their value, null clears
	req.Description.Apply(&loc.Description)
	req.Address.Apply(&loc.Address)
	req.Manager.Apply(&loc.Manager)
	loc.Description = s.sanitizer.Sanitize(loc.Description)
	loc.Address = s.sanitizer.Sanitize(loc.Address)
	loc.Manager = s.sanitizer.Sanitize(loc.Manager)
	if req.Status != nil {
		loc.Status = *req.Status
	}
	loc.UpdatedAt = time.Now()

	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}

	s.logger.Info("location updated", "id", loc.ID, "name", loc.Name)
	return loc, nil
}

// MoveLocation reparents id and inserts it at req.NewOrderIdx, shifting the
// new siblings down, in one transaction.
func (s *locationService) MoveLocation(ctx context.Context, id string, req *inventory.MoveLocationRequest) (*inventory.Location, error) {
	req.NewParentID = normalizeParentID(req.NewParentID)

	if err := validateMoveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var loc *inventory.Location
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		loc, err = s.locationRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.checkPlacement(txCtx, loc.Type, req.NewParentID, id); err != nil {
			return err
		}

		if err := s.locationRepo.ShiftSiblings(txCtx, req.NewParentID, req.NewOrderIdx, id); err != nil {
			return err
		}

		loc.ParentID = req.NewParentID
		loc.OrderIndex = req.NewOrderIdx
		loc.UpdatedAt = time.Now()
		return s.locationRepo.Update(txCtx, loc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("location moved",
		"id", id,
		"new_parent_id", valueOf(req.NewParentID),
		"order_index", req.NewOrderIdx,
	)

	return loc, nil
}

// DeleteLocation removes the whole subtree. Data points go first, then
// devices, then the locations themselves.
func (s *locationService) DeleteLocation(ctx context.Context, id string) (*inventory.DeleteLocationResponse, error) {
	resp := &inventory.DeleteLocationResponse{Success: true}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		locationIDs, err := s.locationRepo.SubtreeIDs(txCtx, id)
		if err != nil {
			return err
		}

		deviceIDs, err := s.deviceRepo.IDsByParents(txCtx, locationIDs)
		if err != nil {
			return err
		}

		if resp.DeletedDataPoints, err = s.dataPointRepo.DeleteByDeviceIDs(txCtx, deviceIDs); err != nil {
			return err
		}
		if resp.DeletedDevices, err = s.deviceRepo.DeleteByIDs(txCtx, deviceIDs); err != nil {
			return err
		}
		if resp.DeletedLocations, err = s.locationRepo.DeleteByIDs(txCtx, locationIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Message = fmt.Sprintf("deleted %d locations, %d devices, %d data points",
		resp.DeletedLocations, resp.DeletedDevices, resp.DeletedDataPoints)

	s.logger.Info("location deleted",
		"id", id,
		"deleted_locations", resp.DeletedLocations,
		"deleted_devices", resp.DeletedDevices,
		"deleted_data_points", resp.DeletedDataPoints,
	)

	return resp, nil
}

func (s *locationService) Stats(ctx context.Context) (*inventory.LocationStats, error) {
	return s.locationRepo.Stats(ctx)
}

// checkPlacement verifies a node of typ may live under parentID. movingID is
// set for moves so the node cannot land inside its own subtree.
func (s *locationService) checkPlacement(ctx context.Context, typ inventory.LocationType, parentID *string, movingID string) error {
	kind := models.Kind(typ)

	if parentID == nil {
		if !kind.CanBeRoot() {
			return domain.NewValidationError("%s must have a parent location", typ)
		}
		return nil
	}

	if movingID != "" {
		if *parentID == movingID {
			return domain.NewValidationError("cannot move a location under itself")
		}
		subtree, err := s.locationRepo.SubtreeIDs(ctx, movingID)
		if err != nil {
			return err
		}
		if slices.Contains(subtree, *parentID) {
			return domain.NewValidationError("cannot move a location under its own descendant")
		}
	}

	parent, err := s.locationRepo.GetByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parentKind := models.Kind(parent.Type); !parentKind.CanContain(kind) {
		return domain.NewValidationError("%s cannot contain %s", parentKind, kind)
	}
	return nil
}

// normalizeParentID treats "" as no parent
func normalizeParentID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return id
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
