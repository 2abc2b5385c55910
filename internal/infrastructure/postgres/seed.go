package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDefaults inserta la bodega 1 con una zona y la ubicación DEF-01. Es idempotente.
func SeedDefaults(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`INSERT INTO warehouses (id, name, address, country, manager, timezone)
		 VALUES (1, 'Default Warehouse', '123 Main St', 'USA', 'Admin', 'UTC')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO zones (id, warehouse_id, name)
		 VALUES (1, 1, 'General')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO locations (zone_id, code, type)
		 VALUES (1, 'DEF-01', 'SHELF')
		 ON CONFLICT (code) DO NOTHING`,
		// Los IDs explícitos no avanzan las secuencias.
		`SELECT setval(pg_get_serial_sequence('warehouses', 'id'), GREATEST((SELECT max(id) FROM warehouses), 1))`,
		`SELECT setval(pg_get_serial_sequence('zones', 'id'), GREATEST((SELECT max(id) FROM zones), 1))`,
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return tx.Commit(ctx)
}
