package assettree

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"iotdash/internal/config"
	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	svc "iotdash/internal/domain/services/assettree"
	"iotdash/internal/service/rules"
)

// CreateNodeRequest is the input of Mutator.Create
type CreateNodeRequest struct {
	Name        string
	Description string
	Address     string
	Manager     string
	ParentID    *string
	Kind        models.Kind
}

// Validate checks the request before anything is sent
func (r *CreateNodeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			rules.NotBlank,
			validation.RuneLength(1, config.MaxNodeNameLength),
		),
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(models.KindLocation, models.KindArea).Error("must be location or area"),
		),
		validation.Field(&r.ParentID,
			validation.When(r.Kind == models.KindArea, validation.Required.Error("an area needs a parent location")),
		),
		validation.Field(&r.Description, validation.RuneLength(0, config.MaxDescriptionLength)),
		validation.Field(&r.Address, validation.RuneLength(0, config.MaxAddressLength)),
		validation.Field(&r.Manager, validation.RuneLength(0, config.MaxManagerLength)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

// Mutator creates and deletes locations and areas, rebuilding the tree after
// every successful write.
type Mutator struct {
	backend svc.Backend
	loader  svc.Loader
	logger  *slog.Logger
}

// NewMutator creates a new mutation controller
func NewMutator(backend svc.Backend, loader svc.Loader, logger *slog.Logger) *Mutator {
	return &Mutator{
		backend: backend,
		loader:  loader,
		logger:  logger,
	}
}

// Create validates req, asks the backend to create the node and returns the
// rebuilt forest.
func (m *Mutator) Create(ctx context.Context, req *CreateNodeRequest) ([]*models.TreeNode, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	created, err := m.backend.CreateLocation(ctx, &inventory.CreateLocationRequest{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Type:        inventory.LocationType(req.Kind),
		ParentID:    req.ParentID,
		Address:     strings.TrimSpace(req.Address),
		Manager:     strings.TrimSpace(req.Manager),
		Metadata:    map[string]any{},
	})
	if err != nil {
		m.logger.Warn("create rejected", "name", name, "kind", req.Kind, "error", err)
		return nil, &domain.CreateError{Name: name, Err: err}
	}

	m.logger.Info("node created",
		"node_id", created.ID,
		"kind", req.Kind,
		"parent_id", deref(req.ParentID),
	)

	return m.loader.Build(ctx)
}

// Delete removes the node and its whole subtree with one backend call and
// returns the rebuilt forest. Confirmation is the caller's job.
func (m *Mutator) Delete(ctx context.Context, id string) ([]*models.TreeNode, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("node id is required")
	}

	if err := m.backend.DeleteLocation(ctx, id); err != nil {
		m.logger.Warn("delete rejected", "node_id", id, "error", err)
		return nil, &domain.DeleteError{NodeID: id, Err: err}
	}

	m.logger.Info("node deleted", "node_id", id)

	return m.loader.Build(ctx)
}
