package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InventoryRepository puerto del ledger. Es el único escritor de cantidades.
type InventoryRepository interface {
	// Increment crea la fila con quantity = change o suma change a la existente,
	// en un único read-modify-write atómico. Devuelve la fila resultante.
	Increment(ctx context.Context, locationID, productID, change int64) (*entity.InventoryRow, error)
	// List consulta filas con el producto cargado. Sin scoping.
	List(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryRow, error)
}
