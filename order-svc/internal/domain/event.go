package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type       string          `json:"type"`
	BatchID    string          `json:"batch_id"`
	OrderID    int64           `json:"order_id"`
	VenueID    int64           `json:"venue_id"`
	FoodID     int64           `json:"food_id"`
	UserID     int64           `json:"user_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Status     OrderStatus     `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewOrderEvent(eventType string, o Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		BatchID:    o.BatchID,
		OrderID:    o.ID,
		VenueID:    o.VenueID,
		FoodID:     o.FoodID,
		UserID:     o.UserID,
		Quantity:   o.Quantity,
		UnitPrice:  o.PriceAtOrder,
		Status:     o.Status,
		OccurredAt: at,
	}
}
