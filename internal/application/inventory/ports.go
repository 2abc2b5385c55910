package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El incremento del ledger y su registro de auditoría se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}
