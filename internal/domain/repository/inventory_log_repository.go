package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InventoryLogRepository auditoría append-only del ledger: no hay update ni delete.
type InventoryLogRepository interface {
	// Append asigna ID y CreatedAt al registro.
	Append(ctx context.Context, entry *entity.InventoryLogEntry) error
	// ListByKey devuelve las entradas de una celda en orden de replay (CreatedAt, ID).
	ListByKey(ctx context.Context, locationID, productID int64) ([]*entity.InventoryLogEntry, error)
}
