package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderCreated = "order.created"

// OrderEvent is the payload order-svc publishes on the orders topic.
type OrderEvent struct {
	Type       string          `json:"type"`
	BatchID    string          `json:"batch_id"`
	OrderID    int64           `json:"order_id"`
	VenueID    int64           `json:"venue_id"`
	FoodID     int64           `json:"food_id"`
	UserID     int64           `json:"user_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Status     string          `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e OrderEvent) Revenue() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Day is the sales day the event counts towards, in UTC.
func (e OrderEvent) Day() time.Time {
	at := e.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	y, m, d := at.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
