package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/inventory"
	invRepo "iotdash/internal/domain/repositories/inventory"
	"iotdash/internal/repository/postgres"
)

// PostgresDataPointRepository implements the DataPointRepository interface
type PostgresDataPointRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewDataPointRepository creates a new data point repository
func NewDataPointRepository(config *postgres.RepositoryConfig) invRepo.DataPointRepository {
	return &PostgresDataPointRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a data point
func (r *PostgresDataPointRepository) Create(ctx context.Context, dp *models.DataPoint) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, device_id, name, description, data_type, address, unit, value, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.DataPoints)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		dp.ID, dp.DeviceID, dp.Name, dp.Description, dp.DataType, dp.Address, dp.Unit,
		dp.Value, dp.Enabled, dp.CreatedAt, dp.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("data point '%s': %w", dp.ID, domain.ErrConflict)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("device %s: %w", dp.DeviceID, domain.ErrNotFound)
		}
		return fmt.Errorf("create data point: %w", err)
	}
	return nil
}

// List returns data points in creation order
func (r *PostgresDataPointRepository) List(ctx context.Context, deviceID *string) ([]models.DataPoint, error) {
	query := fmt.Sprintf(`
		SELECT id, device_id, name, description, data_type, address, unit, value, enabled, created_at, updated_at
		FROM %s
		WHERE $1::text IS NULL OR device_id = $1
		ORDER BY created_at ASC, id ASC
	`, r.tables.DataPoints)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list data points: %w", err)
	}
	defer rows.Close()

	points := make([]models.DataPoint, 0)
	for rows.Next() {
		var dp models.DataPoint
		err := rows.Scan(
			&dp.ID, &dp.DeviceID, &dp.Name, &dp.Description, &dp.DataType, &dp.Address, &dp.Unit,
			&dp.Value, &dp.Enabled, &dp.CreatedAt, &dp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan data point: %w", err)
		}
		points = append(points, dp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate data points: %w", err)
	}

	return points, nil
}

// DeleteByDeviceIDs deletes every data point of the given devices
func (r *PostgresDataPointRepository) DeleteByDeviceIDs(ctx context.Context, deviceIDs []string) (int, error) {
	if len(deviceIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE device_id = ANY($1)`, r.tables.DataPoints)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, deviceIDs)
	if err != nil {
		return 0, fmt.Errorf("delete data points: %w", err)
	}
	return int(result.RowsAffected()), nil
}
