package usecase

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/domain/scope"
)

// LocationUseCase consulta de ubicaciones filtrada por el scope del llamador.
type LocationUseCase struct {
	repo repository.LocationRepository
}

func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// List omite en silencio las ubicaciones de otras bodegas (filtro, no error).
func (uc *LocationUseCase) List(ctx context.Context, id entity.Identity) ([]*dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s := scope.Resolve(id)
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, l := range list {
		if !s.Allows(l.WarehouseID) {
			continue
		}
		out = append(out, &dto.LocationResponse{
			ID:          l.ID,
			ZoneID:      l.ZoneID,
			WarehouseID: l.WarehouseID,
			Code:        l.Code,
			Type:        l.Type,
		})
	}
	return out, nil
}
