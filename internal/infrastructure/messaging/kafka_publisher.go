// Package messaging publica los eventos del ledger y del catálogo en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/Bodega-api/internal/application/ports"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// MessageWriter lo que el publicador necesita de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa ports.EventPublisher sobre un topic.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaPublisher crea el writer. La clave del mensaje es Event.Key, así los eventos
// de una misma celda caen en la misma partición y conservan el orden.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(writer)
}

// NewKafkaPublisherWithWriter permite inyectar el writer (tests).
func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

// Publish serializa el evento a JSON y propaga el contexto de traza en los headers.
func (p *KafkaPublisher) Publish(ctx context.Context, event ports.Event) error {
	msg, err := buildMessage(ctx, event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event to kafka: %w", event.Type, err)
	}
	return nil
}

// Close vacía el buffer del writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func buildMessage(ctx context.Context, event ports.Event) (kafka.Message, error) {
	value, err := json.Marshal(envelope{
		ID:         event.ID,
		Type:       event.Type,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	headers := []kafka.Header{
		{Key: "event-type", Value: []byte(event.Type)},
		{Key: "event-id", Value: []byte(event.ID)},
	}
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier{headers: &headers})
	return kafka.Message{
		Key:     []byte(event.Key),
		Value:   value,
		Time:    event.OccurredAt,
		Headers: headers,
	}, nil
}
