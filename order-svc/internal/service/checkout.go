package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const checkoutSuccessMessage = "Order placed successfully"

type CheckoutConfig struct {
	DefaultVenueID int64
	// StrictItems fails the whole checkout when a cart line cannot be
	// resolved instead of dropping that line. A variant that belongs to a
	// different food counts as unresolved, so lenient mode drops the line
	// rather than charging the food's base price.
	StrictItems bool
}

// CheckoutOrchestrator turns a cart into priced order rows sharing one batch
// id. Run works entirely through the Tx it receives; the caller owns commit
// and rollback.
type CheckoutOrchestrator struct {
	catalog    *CatalogGateway
	coupons    *CouponValidator
	cfg        CheckoutConfig
	newBatchID func() string
}

func NewCheckoutOrchestrator(catalog *CatalogGateway, coupons *CouponValidator, cfg CheckoutConfig) *CheckoutOrchestrator {
	return &CheckoutOrchestrator{
		catalog:    catalog,
		coupons:    coupons,
		cfg:        cfg,
		newBatchID: uuid.NewString,
	}
}

func (o *CheckoutOrchestrator) Run(ctx context.Context, tx Tx, req domain.CheckoutRequest, userID int64, now time.Time) (*domain.BatchSummary, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: food %d", ErrInvalidQuantity, item.FoodID)
		}
	}

	if req.AddressID != nil {
		if _, err := tx.GetAddress(ctx, *req.AddressID, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrInvalidAddress
			}
			return nil, err
		}
	}

	batchID := o.newBatchID()
	subtotal := decimal.Zero
	orders := make([]domain.Order, 0, len(req.Items))

	for _, item := range req.Items {
		priced, err := o.catalog.ResolvePrice(ctx, tx, item.FoodID, item.VariantID)
		if err != nil {
			if errors.Is(err, ErrFoodNotFound) && !o.cfg.StrictItems {
				logger.Warn().Err(err).Str("batch_id", batchID).Int64("food_id", item.FoodID).Msg("Skipping unresolved cart item")
				continue
			}
			return nil, err
		}

		order := domain.Order{
			BatchID:      batchID,
			VenueID:      o.venueFor(req.VenueID, priced.VenueID),
			FoodID:       priced.Food.ID,
			UserID:       userID,
			AddressID:    req.AddressID,
			Quantity:     item.Quantity,
			PriceAtOrder: priced.UnitPrice,
			Status:       domain.StatusCreated,
		}
		if priced.Variant != nil {
			variantID := priced.Variant.ID
			order.VariantID = &variantID
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return nil, err
		}

		subtotal = subtotal.Add(order.LineTotal())
		orders = append(orders, order)
	}

	discount := decimal.Zero
	if strings.TrimSpace(req.CouponCode) != "" {
		var err error
		discount, _, err = o.coupons.Validate(ctx, tx, req.CouponCode, subtotal, now)
		if err != nil {
			return nil, err
		}
	}

	return &domain.BatchSummary{
		BatchID:        batchID,
		TotalAmount:    subtotal,
		DiscountAmount: discount,
		FinalAmount:    subtotal.Sub(discount),
		Status:         "success",
		Message:        checkoutSuccessMessage,
		Items:          orders,
	}, nil
}

// venueFor picks the explicit request venue, then the food's venue, then the
// configured default.
func (o *CheckoutOrchestrator) venueFor(requested *int64, foodVenue int64) int64 {
	if requested != nil && *requested > 0 {
		return *requested
	}
	if foodVenue > 0 {
		return foodVenue
	}
	return o.cfg.DefaultVenueID
}

type CheckoutService struct {
	store        Store
	orchestrator *CheckoutOrchestrator
	idempotency  IdempotencyStore
	events       *OrderEvents
	now          func() time.Time
}

func NewCheckoutService(store Store, orchestrator *CheckoutOrchestrator, idempotency IdempotencyStore, events *OrderEvents) *CheckoutService {
	return &CheckoutService{
		store:        store,
		orchestrator: orchestrator,
		idempotency:  idempotency,
		events:       events,
		now:          time.Now,
	}
}

// Checkout runs one checkout atomically. A non-empty idempotencyKey makes
// repeated submissions by the same user replay the first summary.
func (s *CheckoutService) Checkout(ctx context.Context, req domain.CheckoutRequest, userID int64, idempotencyKey string) (*domain.BatchSummary, error) {
	if idempotencyKey == "" || s.idempotency == nil {
		return s.checkout(ctx, req, userID)
	}

	key := fmt.Sprintf("checkout:%d:%s", userID, idempotencyKey)
	cached, err := s.idempotency.Reserve(ctx, key)
	switch {
	case errors.Is(err, ErrRequestInFlight):
		return nil, err
	case err != nil:
		logger.Warn().Err(err).Str("key", key).Msg("Idempotency store unavailable, checking out without it")
		return s.checkout(ctx, req, userID)
	case cached != nil:
		var summary domain.BatchSummary
		if err := json.Unmarshal(cached, &summary); err != nil {
			return nil, err
		}
		return &summary, nil
	}

	summary, err := s.checkout(ctx, req, userID)
	if err != nil {
		if relErr := s.idempotency.Release(ctx, key); relErr != nil {
			logger.Error().Err(relErr).Str("key", key).Msg("Error releasing idempotency key")
		}
		return nil, err
	}

	payload, err := json.Marshal(summary)
	if err == nil {
		err = s.idempotency.Complete(ctx, key, payload)
	}
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error storing checkout result")
	}
	return summary, nil
}

func (s *CheckoutService) checkout(ctx context.Context, req domain.CheckoutRequest, userID int64) (*domain.BatchSummary, error) {
	now := s.now()
	var summary *domain.BatchSummary
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		summary, err = s.orchestrator.Run(ctx, tx, req, userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("batch_id", summary.BatchID).Int64("user_id", userID).Int("lines", len(summary.Items)).
		Str("final_amount", summary.FinalAmount.StringFixed(2)).Msg("Checkout committed")

	events := make([]domain.OrderEvent, 0, len(summary.Items))
	for _, order := range summary.Items {
		events = append(events, domain.NewOrderEvent(domain.EventOrderCreated, order, now))
	}
	s.events.Emit(ctx, events...)
	return summary, nil
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
