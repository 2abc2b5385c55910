package entity

import "time"

// InventoryRow celda del ledger: cantidad de un producto en una ubicación.
// Quantity puede ser negativa: no hay piso en cero.
type InventoryRow struct {
	LocationID int64
	ProductID  int64
	Quantity   int64
	UpdatedAt  time.Time
	Product    *Product // presente en consultas con join
}

// InventoryFilter filtros opcionales de la consulta del ledger (cero = sin filtro).
type InventoryFilter struct {
	LocationID int64
	ProductID  int64
}

// InventoryLogEntry registro de auditoría, uno por cada ajuste. Inmutable.
type InventoryLogEntry struct {
	ID         int64
	UserID     int64
	LocationID int64
	ProductID  int64
	Change     int64
	CreatedAt  time.Time
}
