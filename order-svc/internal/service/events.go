package service

import (
	"context"

	"overcooked-ordering/order-svc/internal/domain"
)

// OrderEvents fans committed order changes out to the broker and the live
// kitchen feed. Delivery failures are logged and never surface to callers.
type OrderEvents struct {
	publisher EventPublisher
	notifier  Notifier
}

func NewOrderEvents(publisher EventPublisher, notifier Notifier) *OrderEvents {
	return &OrderEvents{publisher: publisher, notifier: notifier}
}

func (e *OrderEvents) Emit(ctx context.Context, events ...domain.OrderEvent) {
	if e == nil {
		return
	}
	for _, event := range events {
		if e.publisher != nil {
			if err := e.publisher.PublishOrderEvent(ctx, event); err != nil {
				logger.Error().Err(err).Str("type", event.Type).Int64("order_id", event.OrderID).Msg("Error publishing order event")
			}
		}
		if e.notifier != nil {
			e.notifier.Broadcast(ctx, event)
		}
	}
}
