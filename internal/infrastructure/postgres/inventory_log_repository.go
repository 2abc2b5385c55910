package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo auditoría append-only sobre inventory_logs (usable con pool o tx).
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta el registro. clock_timestamp() (no now()) porque now() es la hora de inicio
// de la tx y no respetaría el orden en que se obtuvo el lock de la celda.
func (r *InventoryLogRepo) Append(ctx context.Context, entry *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_logs (user_id, location_id, product_id, change, created_at)
		VALUES ($1, $2, $3, $4, clock_timestamp())
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		entry.UserID, entry.LocationID, entry.ProductID, entry.Change,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append inventory log: %w", err)
	}
	return nil
}

// ListByKey historial de una celda en orden de replay.
func (r *InventoryLogRepo) ListByKey(ctx context.Context, locationID, productID int64) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, user_id, location_id, product_id, change, created_at
		FROM inventory_logs
		WHERE location_id = $1 AND product_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, locationID, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.LocationID, &e.ProductID, &e.Change, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
