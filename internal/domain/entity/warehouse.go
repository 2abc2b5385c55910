package entity

// Warehouse es la unidad raíz de la jerarquía (tenant de bodega).
type Warehouse struct {
	ID       int64
	Name     string
	Address  string
	Country  string
	Manager  string
	Timezone string
}

// Zone pertenece a exactamente una Warehouse.
type Zone struct {
	ID          int64
	WarehouseID int64
	Name        string
	Description string
}

// Tipos de ubicación.
const (
	LocationTypeShelf = "SHELF"
	LocationTypeBin   = "BIN"
)

// Location pertenece a una Zone. WarehouseID se resuelve siempre a través de la zona
// (join zones.warehouse_id); nunca se guarda en la ubicación.
type Location struct {
	ID          int64
	ZoneID      int64
	WarehouseID int64
	Code        string
	Type        string
}
