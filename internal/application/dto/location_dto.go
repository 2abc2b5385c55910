package dto

// LocationResponse ubicación con su bodega efectiva.
type LocationResponse struct {
	ID          int64  `json:"id"`
	ZoneID      int64  `json:"zoneId"`
	WarehouseID int64  `json:"warehouseId"`
	Code        string `json:"code"`
	Type        string `json:"type"`
}
