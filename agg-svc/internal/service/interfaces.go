package service

import (
	"context"
	"time"

	"overcooked-ordering/agg-svc/internal/domain"
	"overcooked-ordering/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type StoreInterface interface {
	UpdateDailySales(ctx context.Context, venueID int64, day time.Time, revenue decimal.Decimal) error
	UpdateAnalytics(ctx context.Context, venueID, foodID int64, quantity int, day time.Time) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
