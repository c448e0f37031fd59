package storage

import (
	"context"
	"encoding/json"

	"grab-atreat/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaOrderPublisher emits one message per committed order transition,
// keyed by order id so per-order ordering survives partitioning.
type KafkaOrderPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaOrderPublisher(writer *kafka.Writer) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{Writer: writer}
}

func (p *KafkaOrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}
