package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// kafkaPublisher emits order lifecycle events to a Kafka topic for the
// fulfillment dashboard and downstream consumers. Publishing is best-effort:
// failures are logged and never surfaced to the customer.
type kafkaPublisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafkaPublisher creates a Publisher backed by the given writer.
func NewKafkaPublisher(writer *kafka.Writer, log zerolog.Logger) Publisher {
	return &kafkaPublisher{writer: writer, log: log}
}

type orderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      Status    `json:"status"`
	Previous    Status    `json:"previous_status,omitempty"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (p *kafkaPublisher) OrderPlaced(ctx context.Context, o *Order) {
	p.publish(ctx, orderEvent{
		Type:        "order.placed",
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Total,
		Currency:    o.Currency,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *kafkaPublisher) StatusChanged(ctx context.Context, o *Order, previous Status) {
	p.publish(ctx, orderEvent{
		Type:        "order.status_changed",
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Previous:    previous,
		Total:       o.Total,
		Currency:    o.Currency,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *kafkaPublisher) publish(ctx context.Context, ev orderEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("type", ev.Type).Msg("marshal order event")
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
	})
	if err != nil {
		p.log.Error().Err(err).
			Str("type", ev.Type).
			Str("order_number", ev.OrderNumber).
			Msg("publish order event")
	}
}
