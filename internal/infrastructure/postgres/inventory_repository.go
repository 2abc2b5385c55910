package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo ledger sobre la tabla inventory (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Increment crea la fila o suma change en una sola sentencia. El ON CONFLICT toma el lock
// de la fila, por lo que dos incrementos concurrentes sobre la misma celda nunca pierden un update.
func (r *InventoryRepo) Increment(ctx context.Context, locationID, productID, change int64) (*entity.InventoryRow, error) {
	query := `
		INSERT INTO inventory (location_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, clock_timestamp())
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING location_id, product_id, quantity, updated_at`
	var row entity.InventoryRow
	err := r.q.QueryRow(ctx, query, locationID, productID, change).Scan(
		&row.LocationID, &row.ProductID, &row.Quantity, &row.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: ubicación %d o producto %d", domain.ErrNotFound, locationID, productID)
		}
		return nil, fmt.Errorf("increment inventory: %w", err)
	}
	return &row, nil
}

// List filas del ledger con el producto (join). Filtros en cero se ignoran.
func (r *InventoryRepo) List(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryRow, error) {
	query := `
		SELECT i.location_id, i.product_id, i.quantity, i.updated_at,
		       p.id, p.name, p.sku, p.category
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE 1 = 1`
	args := []any{}
	pos := 1
	if filter.LocationID != 0 {
		query += fmt.Sprintf(" AND i.location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.ProductID != 0 {
		query += fmt.Sprintf(" AND i.product_id = $%d", pos)
		args = append(args, filter.ProductID)
	}
	query += " ORDER BY i.location_id, i.product_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRow
	for rows.Next() {
		var row entity.InventoryRow
		var p entity.Product
		if err := rows.Scan(&row.LocationID, &row.ProductID, &row.Quantity, &row.UpdatedAt,
			&p.ID, &p.Name, &p.SKU, &p.Category); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		row.Product = &p
		list = append(list, &row)
	}
	return list, rows.Err()
}
