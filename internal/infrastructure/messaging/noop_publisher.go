package messaging

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/ports"
)

var _ ports.EventPublisher = NoopPublisher{}

// NoopPublisher se usa cuando KAFKA_BROKERS está vacío.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ports.Event) error { return nil }
