package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Bodega-api/internal/application/ports"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	pub := NewKafkaPublisherWithWriter(w)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := pub.Publish(ctx, ports.Event{
		ID:         "ev-1",
		Type:       ports.EventInventoryAdjusted,
		Key:        "loc:1:prod:2",
		OccurredAt: at,
		Payload:    map[string]int64{"quantity": 7},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "loc:1:prod:2", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	carrier := NewHeaderCarrier(&msg)
	assert.Equal(t, ports.EventInventoryAdjusted, carrier.Get("event-type"))
	assert.Equal(t, "ev-1", carrier.Get("event-id"))
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", carrier.Get("traceparent"))

	var body struct {
		ID      string           `json:"id"`
		Type    string           `json:"type"`
		Payload map[string]int64 `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "ev-1", body.ID)
	assert.Equal(t, int64(7), body.Payload["quantity"])

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_ErrorDelWriter(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	err := NewKafkaPublisherWithWriter(w).Publish(context.Background(), ports.Event{Type: ports.EventProductsImported})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
}

func TestHeaderCarrier_SetReemplaza(t *testing.T) {
	msg := kafka.Message{}
	c := NewHeaderCarrier(&msg)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")

	assert.Equal(t, "3", c.Get("a"))
	assert.Equal(t, "", c.Get("z"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
	assert.Len(t, msg.Headers, 2)
}
