package ports

import (
	"context"
	"time"
)

// Tipos de evento publicados por el núcleo.
const (
	EventInventoryAdjusted = "inventory.adjusted"
	EventProductsImported  = "catalog.imported"
)

// Event mensaje de dominio publicado después de confirmar la transacción.
// Key agrupa los eventos que deben conservar orden (p.ej. "loc:1:prod:9").
type Event struct {
	ID         string
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher publica eventos hacia el exterior. Un fallo nunca revierte el ledger:
// el llamador lo registra como condición secundaria.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
