package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// LocationRepository lectura de ubicaciones con su bodega resuelta vía zona.
type LocationRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}
