package dto

import "time"

// AdjustInventoryRequest body para POST /api/inventory/adjust.
// Los punteros permiten distinguir un campo ausente de un cero.
type AdjustInventoryRequest struct {
	LocationID *int64 `json:"locationId"`
	ProductID  *int64 `json:"productId"`
	Change     *int64 `json:"change"`
}

// AdjustInventoryResponse cantidad resultante tras el ajuste.
type AdjustInventoryResponse struct {
	LocationID int64 `json:"locationId"`
	ProductID  int64 `json:"productId"`
	Quantity   int64 `json:"quantity"`
}

// InventoryRowResponse fila del ledger con el producto embebido.
type InventoryRowResponse struct {
	LocationID int64            `json:"locationId"`
	ProductID  int64            `json:"productId"`
	Quantity   int64            `json:"quantity"`
	Product    *ProductResponse `json:"product"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// InventoryLogResponse entrada de auditoría.
type InventoryLogResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	LocationID int64     `json:"locationId"`
	ProductID  int64     `json:"productId"`
	Change     int64     `json:"change"`
	Timestamp  time.Time `json:"timestamp"`
}

// InventoryHistoryResponse historial de una celda y la cantidad reconstruida por replay.
type InventoryHistoryResponse struct {
	LocationID       int64                  `json:"locationId"`
	ProductID        int64                  `json:"productId"`
	Entries          []InventoryLogResponse `json:"entries"`
	ReplayedQuantity int64                  `json:"replayedQuantity"`
}
