package storage

import (
	"context"
	"encoding/json"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderEvent keys messages by batch id so lines of one checkout stay
// on one partition.
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BatchID),
		Value: payload,
	})
}

var _ service.EventPublisher = (*KafkaPublisher)(nil)
