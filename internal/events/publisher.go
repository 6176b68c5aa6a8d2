package events

import (
	"context"
	"encoding/json"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Event types emitted over the order lifecycle.
const (
	OrderPlaced = "order.placed"
	OrderPaid   = "order.paid"
	OrderFailed = "order.failed"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     uint      `json:"userId"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits order lifecycle events for downstream consumers. Publishing
// is best effort; callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafkaGo.Writer
}

// NewKafkaPublisher creates a publisher writing JSON events keyed by order id.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return &kafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt OrderEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(evt.OrderID),
		Value: value,
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop discards events; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }
func (Noop) Close() error                              { return nil }
