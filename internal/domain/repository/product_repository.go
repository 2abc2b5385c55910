package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
type ProductRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListOrderedByName(ctx context.Context) ([]*entity.Product, error)
	// InsertSkipExisting inserta con semántica skip-on-conflict por SKU y devuelve
	// cuántas filas se insertaron realmente.
	InsertSkipExisting(ctx context.Context, products []*entity.Product) (int64, error)
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si hay stock que lo referencia.
	Delete(ctx context.Context, id int64) error
}
