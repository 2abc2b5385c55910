package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones con warehouse_id resuelto por la zona.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationSelect = `
	SELECT l.id, l.zone_id, z.warehouse_id, l.code, l.type
	FROM locations l
	JOIN zones z ON z.id = l.zone_id`

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, locationSelect+` WHERE l.id = $1`, id).Scan(
		&l.ID, &l.ZoneID, &l.WarehouseID, &l.Code, &l.Type,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, locationSelect+` ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.ZoneID, &l.WarehouseID, &l.Code, &l.Type); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
