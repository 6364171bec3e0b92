package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"overcooked-ordering/agg-svc/internal/domain"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "agg-svc").Logger()

const readRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start consumes until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	logger.Info().Msg("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				logger.Info().Msg("Aggregation consumer stopped")
				return
			}
			logger.Error().Err(err).Msg("Error reading message")
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			logger.Warn().Err(err).Int64("offset", message.Offset).Msg("Error unmarshaling message")
			continue
		}
		c.ProcessEvent(ctx, event)
	}
}

// ProcessEvent folds one order.created event into the sales aggregates.
// Other event types are ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderCreated {
		return
	}
	if event.VenueID <= 0 || event.FoodID <= 0 || event.Quantity < 1 {
		logger.Warn().Int64("order_id", event.OrderID).Msg("Skipping incomplete order event")
		return
	}

	day := event.Day()
	if err := c.Store.UpdateDailySales(ctx, event.VenueID, day, event.Revenue()); err != nil {
		logger.Error().Err(err).Int64("order_id", event.OrderID).Msg("Error updating daily sales")
		return
	}
	if err := c.Store.UpdateAnalytics(ctx, event.VenueID, event.FoodID, event.Quantity, day); err != nil {
		logger.Error().Err(err).Int64("order_id", event.OrderID).Msg("Error updating analytics")
		return
	}

	logger.Debug().Int64("order_id", event.OrderID).Int64("venue_id", event.VenueID).Msg("Processed order event")
}
