package memory

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// SeedDefaults crea la bodega por defecto con una zona y una ubicación,
// para que el modo memoria arranque con algo sobre qué ajustar.
func (s *Store) SeedDefaults() (entity.Location, error) {
	wh := s.AddWarehouse(entity.Warehouse{
		Name:     "Default Warehouse",
		Address:  "123 Main St",
		Country:  "USA",
		Manager:  "Admin",
		Timezone: "UTC",
	})
	zone, err := s.AddZone(entity.Zone{WarehouseID: wh.ID, Name: "General"})
	if err != nil {
		return entity.Location{}, err
	}
	return s.AddLocation(entity.Location{ZoneID: zone.ID, Code: "DEF-01", Type: entity.LocationTypeShelf})
}
