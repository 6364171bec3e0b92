package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/google/uuid"
)

type OrderService struct {
	store          Store
	catalog        *CatalogGateway
	qrEncoder      QRGenerator
	events         *OrderEvents
	defaultVenueID int64
	now            func() time.Time
}

func NewOrderService(store Store, catalog *CatalogGateway, qr QRGenerator, events *OrderEvents, defaultVenueID int64) *OrderService {
	return &OrderService{
		store:          store,
		catalog:        catalog,
		qrEncoder:      qr,
		events:         events,
		defaultVenueID: defaultVenueID,
		now:            time.Now,
	}
}

// Create places a single-item order. Unlike checkout, an unresolved food or
// variant is an error.
func (s *OrderService) Create(ctx context.Context, req domain.OrderRequest, userID int64) (*domain.Order, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var order *domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		if req.AddressID != nil {
			if _, err := tx.GetAddress(ctx, *req.AddressID, userID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrInvalidAddress
				}
				return err
			}
		}

		priced, err := s.catalog.ResolvePrice(ctx, tx, req.FoodID, req.VariantID)
		if err != nil {
			return err
		}

		venueID := priced.VenueID
		if req.VenueID != nil && *req.VenueID > 0 {
			venueID = *req.VenueID
		}
		if venueID == 0 {
			venueID = s.defaultVenueID
		}

		order = &domain.Order{
			BatchID:      uuid.NewString(),
			VenueID:      venueID,
			FoodID:       priced.Food.ID,
			VariantID:    req.VariantID,
			UserID:       userID,
			AddressID:    req.AddressID,
			Quantity:     req.Quantity,
			PriceAtOrder: priced.UnitPrice,
			Status:       domain.StatusCreated,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, domain.NewOrderEvent(domain.EventOrderCreated, *order, s.now()))
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		orders, err = tx.ListOrdersByUser(ctx, userID)
		return err
	})
	return orders, err
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		order, err = tx.GetOrder(ctx, id)
		return err
	})
	return order, err
}

// Batch returns the caller's lines of a checkout batch. A batch owned by
// someone else reads as not found.
func (s *OrderService) Batch(ctx context.Context, batchID string, userID int64) ([]domain.Order, error) {
	var lines []domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		all, err := tx.ListOrdersByBatch(ctx, batchID)
		if err != nil {
			return err
		}
		for _, o := range all {
			if o.UserID == userID {
				lines = append(lines, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	return lines, nil
}

func (s *OrderService) BatchQRCode(ctx context.Context, batchID string, userID int64) ([]byte, error) {
	if _, err := s.Batch(ctx, batchID, userID); err != nil {
		return nil, err
	}
	if s.qrEncoder == nil {
		return nil, fmt.Errorf("qr encoder not configured")
	}
	return s.qrEncoder.Generate(batchID)
}

func (s *OrderService) ListByStatus(ctx context.Context, status domain.OrderStatus, venueID int64) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	var orders []domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		orders, err = tx.ListOrdersByStatus(ctx, status, venueID)
		return err
	})
	return orders, err
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated *domain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		current, err := tx.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, status)
		}
		updated, err = tx.UpdateOrderStatus(ctx, id, current.Status, status)
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: order %d changed while updating", ErrInvalidStatusTransition, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, domain.NewOrderEvent(domain.EventOrderStatusChanged, *updated, s.now()))
	return updated, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
