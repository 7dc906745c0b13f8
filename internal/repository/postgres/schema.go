package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the inventory tables and indexes if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Locations + ` (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL CHECK (type IN ('location', 'area')),
			parent_id TEXT REFERENCES ` + tables.Locations + `(id),
			address TEXT NOT NULL DEFAULT '',
			manager TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			metadata JSONB NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'active',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Devices + ` (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			device_type TEXT NOT NULL DEFAULT '',
			location_id TEXT REFERENCES ` + tables.Locations + `(id),
			area_id TEXT REFERENCES ` + tables.Locations + `(id),
			status TEXT NOT NULL DEFAULT 'unknown',
			vendor TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			last_seen TIMESTAMPTZ,
			reliability_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			alert_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.DataPoints + ` (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL REFERENCES ` + tables.Devices + `(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			data_type TEXT NOT NULL DEFAULT 'float',
			address TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT '',
			value JSONB,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `locations_parent ON ` + tables.Locations + `(parent_id, order_index)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `devices_location ON ` + tables.Devices + `(location_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `devices_area ON ` + tables.Devices + `(area_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `data_points_device ON ` + tables.DataPoints + `(device_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables drops the inventory tables, dependents first
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range slices.Backward(tables.All()) {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes every row but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range slices.Backward(tables.All()) {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
