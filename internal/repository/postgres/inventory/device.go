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

// PostgresDeviceRepository implements the DeviceRepository interface
type PostgresDeviceRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(config *postgres.RepositoryConfig) invRepo.DeviceRepository {
	return &PostgresDeviceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a device
func (r *PostgresDeviceRepository) Create(ctx context.Context, d *models.Device) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, device_type, location_id, area_id, status,
			vendor, model, address, last_seen, reliability_percent, alert_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, r.tables.Devices)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		d.ID, d.Name, d.Description, d.DeviceType, d.LocationID, d.AreaID, d.Status,
		d.Vendor, d.Model, d.Address, d.LastSeen, d.Reliability, d.AlertCount, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("device '%s': %w", d.ID, domain.ErrConflict)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("device parent: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

// List returns devices matching filter, oldest first
func (r *PostgresDeviceRepository) List(ctx context.Context, filter models.DeviceFilter) ([]models.Device, error) {
	var conditions []string
	var args []any
	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("location_id", filter.LocationID)
	add("area_id", filter.AreaID)
	add("status", filter.Status)

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, device_type, location_id, area_id, status,
			vendor, model, address, last_seen, reliability_percent, alert_count, created_at, updated_at
		FROM %s
		%s
		ORDER BY created_at ASC, id ASC
	`, r.tables.Devices, where)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0)
	for rows.Next() {
		var d models.Device
		err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.DeviceType, &d.LocationID, &d.AreaID, &d.Status,
			&d.Vendor, &d.Model, &d.Address, &d.LastSeen, &d.Reliability, &d.AlertCount, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate devices: %w", err)
	}

	return devices, nil
}

// IDsByParents returns the ids of devices attached to any of parentIDs
func (r *PostgresDeviceRepository) IDsByParents(ctx context.Context, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE location_id = ANY($1) OR area_id = ANY($1)
	`, r.tables.Devices)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("list device ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list device ids: %w", err)
	}
	return ids, nil
}

// DeleteByIDs deletes the given devices
func (r *PostgresDeviceRepository) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Devices)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete devices: %w", err)
	}
	return int(result.RowsAffected()), nil
}
