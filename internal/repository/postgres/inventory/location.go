// Package inventory holds the pgx repositories for locations, devices and
// data points.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/inventory"
	invRepo "iotdash/internal/domain/repositories/inventory"
	"iotdash/internal/repository/postgres"
)

const locationColumns = `id, name, description, type, parent_id, address, manager, lat, lng,
	metadata, status, order_index, created_at, updated_at`

// PostgresLocationRepository implements the LocationRepository interface
type PostgresLocationRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(config *postgres.RepositoryConfig) invRepo.LocationRepository {
	return &PostgresLocationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a location; ID and timestamps are set by the caller
func (r *PostgresLocationRepository) Create(ctx context.Context, loc *models.Location) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, type, parent_id, address, manager, lat, lng,
			metadata, status, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Locations)

	metadata := loc.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		loc.ID,
		loc.Name,
		loc.Description,
		string(loc.Type),
		loc.ParentID,
		loc.Address,
		loc.Manager,
		loc.Latitude,
		loc.Longitude,
		metadata,
		loc.Status,
		loc.OrderIndex,
		loc.CreatedAt,
		loc.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("location '%s' already exists", loc.ID),
				ResourceType: "location",
				ResourceID:   loc.ID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent location %s: %w", derefOr(loc.ParentID, "?"), domain.ErrNotFound)
		}
		return fmt.Errorf("create location: %w", err)
	}

	return nil
}

// GetByID retrieves a location by ID
func (r *PostgresLocationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, locationColumns, r.tables.Locations)

	executor := postgres.GetExecutor(ctx, r.pool)
	loc, err := scanLocation(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", id)}
		}
		return nil, fmt.Errorf("get location: %w", err)
	}

	return loc, nil
}

// Update writes every mutable column of loc
func (r *PostgresLocationRepository) Update(ctx context.Context, loc *models.Location) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, parent_id = $3, address = $4, manager = $5,
			status = $6, order_index = $7, updated_at = $8
		WHERE id = $9
	`, r.tables.Locations)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		loc.Name,
		loc.Description,
		loc.ParentID,
		loc.Address,
		loc.Manager,
		loc.Status,
		loc.OrderIndex,
		loc.UpdatedAt,
		loc.ID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent location %s: %w", derefOr(loc.ParentID, "?"), domain.ErrNotFound)
		}
		return fmt.Errorf("update location: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", loc.ID)}
	}

	return nil
}

// List returns locations matching filter, siblings in display order
func (r *PostgresLocationRepository) List(ctx context.Context, filter invRepo.LocationFilter) ([]models.Location, error) {
	var conditions []string
	var args []any

	if filter.RootsOnly {
		conditions = append(conditions, "parent_id IS NULL")
	} else if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		conditions = append(conditions, fmt.Sprintf("parent_id = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		%s
		ORDER BY order_index ASC, created_at ASC
	`, locationColumns, r.tables.Locations, where)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]models.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, *loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	return locations, nil
}

// SubtreeIDs walks parent_id links downward with a recursive CTE
func (r *PostgresLocationRepository) SubtreeIDs(ctx context.Context, id string) ([]string, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id, 0 AS depth FROM %s WHERE id = $1
			UNION ALL
			SELECT l.id, s.depth + 1
			FROM %s l
			JOIN subtree s ON l.parent_id = s.id
		)
		SELECT id FROM subtree ORDER BY depth DESC
	`, r.tables.Locations, r.tables.Locations)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get location subtree: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("get location subtree: %w", err)
	}
	if len(ids) == 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("location %s not found", id)}
	}

	return ids, nil
}

// ShiftSiblings opens a slot at fromIndex under parentID
func (r *PostgresLocationRepository) ShiftSiblings(ctx context.Context, parentID *string, fromIndex int, excludeID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET order_index = order_index + 1
		WHERE parent_id IS NOT DISTINCT FROM $1 AND order_index >= $2 AND id <> $3
	`, r.tables.Locations)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, parentID, fromIndex, excludeID); err != nil {
		return fmt.Errorf("shift sibling order: %w", err)
	}
	return nil
}

// NextOrderIndex returns one past the highest sibling index
func (r *PostgresLocationRepository) NextOrderIndex(ctx context.Context, parentID *string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(order_index) + 1, 0)
		FROM %s
		WHERE parent_id IS NOT DISTINCT FROM $1
	`, r.tables.Locations)

	var next int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, parentID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next order index: %w", err)
	}
	return next, nil
}

// DeleteByIDs deletes the given locations in one statement
func (r *PostgresLocationRepository) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Locations)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ids)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return 0, fmt.Errorf("location still referenced: %w", domain.ErrConflict)
		}
		return 0, fmt.Errorf("delete locations: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// Stats counts locations by type
func (r *PostgresLocationRepository) Stats(ctx context.Context) (*models.LocationStats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'location'),
			COUNT(*) FILTER (WHERE type = 'area')
		FROM %s
	`, r.tables.Locations)

	var stats models.LocationStats
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&stats.Total, &stats.Locations, &stats.Areas); err != nil {
		return nil, fmt.Errorf("location stats: %w", err)
	}
	return &stats, nil
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	var loc models.Location
	var typ string
	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Description,
		&typ,
		&loc.ParentID,
		&loc.Address,
		&loc.Manager,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Metadata,
		&loc.Status,
		&loc.OrderIndex,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	loc.Type = models.LocationType(typ)
	return &loc, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
