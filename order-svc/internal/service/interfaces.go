package service

import (
	"context"
	"time"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Repositories return ErrNotFound when a lookup matches no row.

type CatalogRepository interface {
	GetFood(ctx context.Context, id int64) (*domain.Food, error)
	GetVariant(ctx context.Context, id int64) (*domain.Variant, error)
	ListFoods(ctx context.Context, filter domain.MenuFilter) ([]domain.Food, error)
	CreateFood(ctx context.Context, food *domain.Food) error
	CreateVenue(ctx context.Context, venue *domain.Venue) error
	ListVenues(ctx context.Context) ([]domain.Venue, error)
}

type FavoriteRepository interface {
	// AddFavorite is a no-op when the user already favours the food.
	AddFavorite(ctx context.Context, fav *domain.Favorite) error
	RemoveFavorite(ctx context.Context, userID, foodID int64) (int64, error)
	ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

type AddressRepository interface {
	GetAddress(ctx context.Context, id, ownerID int64) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error)
	CreateAddress(ctx context.Context, addr *domain.Address) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrdersByBatch(ctx context.Context, batchID string) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, venueID int64) ([]domain.Order, error)
	// UpdateOrderStatus moves an order from one status to the next. It returns
	// ErrNotFound when the order is no longer in from.
	UpdateOrderStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error)
}

type CouponRepository interface {
	// GetActiveCoupon returns an active coupon whose validity has not ended at now.
	GetActiveCoupon(ctx context.Context, code string, now time.Time) (*domain.Coupon, error)
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	ListActiveCoupons(ctx context.Context, now time.Time) ([]domain.Coupon, error)
}

type ClaimRepository interface {
	// CreateClaim returns ErrAlreadyClaimed when the user already holds the coupon.
	CreateClaim(ctx context.Context, claim *domain.CouponClaim) error
	ListClaims(ctx context.Context, userID int64) ([]domain.CouponClaim, error)
}

type ReservationRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context, venueID int64) ([]domain.Table, error)
	GetTable(ctx context.Context, id int64) (*domain.Table, error)
	ReservedTableIDs(ctx context.Context, venueID int64, slot int, date string) ([]int64, error)
	ReservationExists(ctx context.Context, key domain.SlotKey) (bool, error)
	// CreateReservation returns ErrSlotTaken when the (table, slot, date) key is held.
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (int64, error)
	ListReservationsByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	CreateWaiting(ctx context.Context, w *domain.Waiting) error
	// NextWaiting returns the oldest waiting entry for key, ties broken by id.
	NextWaiting(ctx context.Context, key domain.SlotKey) (*domain.Waiting, error)
	DeleteWaiting(ctx context.Context, id int64) error
	ListWaitingsByUser(ctx context.Context, userID int64) ([]domain.Waiting, error)
}

// Tx is the unit of work handed to components. Everything done through one
// Tx commits or rolls back together.
type Tx interface {
	CatalogRepository
	FavoriteRepository
	AddressRepository
	OrderRepository
	CouponRepository
	ClaimRepository
	ReservationRepository
}

type Store interface {
	// WithinTx runs fn in a transaction, committing when fn returns nil.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type IdempotencyStore interface {
	// Reserve claims key for one in-flight request. It returns the stored
	// response when the key already completed, or ErrRequestInFlight.
	Reserve(ctx context.Context, key string) ([]byte, error)
	Complete(ctx context.Context, key string, response []byte) error
	Release(ctx context.Context, key string) error
}

// Notifier pushes order events to live subscribers such as the kitchen feed.
type Notifier interface {
	Broadcast(ctx context.Context, event domain.OrderEvent)
}

type QRGenerator interface {
	Generate(batchID string) ([]byte, error)
}

type CatalogServiceInterface interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	CreateVenue(ctx context.Context, venue *domain.Venue) error
	ListMenu(ctx context.Context, filter domain.MenuFilter) ([]domain.Food, error)
	CreateFood(ctx context.Context, food *domain.Food) error
	ToggleFavorite(ctx context.Context, userID, foodID int64) (*domain.FavoriteToggle, error)
	ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest, userID int64, idempotencyKey string) (*domain.BatchSummary, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.OrderRequest, userID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Batch(ctx context.Context, batchID string, userID int64) ([]domain.Order, error)
	BatchQRCode(ctx context.Context, batchID string, userID int64) ([]byte, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, venueID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type CouponServiceInterface interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	ListActive(ctx context.Context) ([]domain.Coupon, error)
	Quote(ctx context.Context, code string, cartTotal decimal.Decimal) (*domain.CouponQuote, error)
	Claim(ctx context.Context, code string, userID int64) (*domain.CouponClaim, error)
	Claims(ctx context.Context, userID int64) ([]domain.CouponClaim, error)
}

type ReservationServiceInterface interface {
	CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Table, error)
	CreateReservation(ctx context.Context, req domain.ReservationRequest, userID int64) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id int64, actor domain.Actor) (*domain.CancelOutcome, error)
	CreateWaiting(ctx context.Context, req domain.ReservationRequest, userID int64) (*domain.Waiting, error)
	ListReservations(ctx context.Context, userID int64) ([]domain.Reservation, error)
	ListWaitings(ctx context.Context, userID int64) ([]domain.Waiting, error)
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context, venueID int64) ([]domain.Table, error)
}

type AddressServiceInterface interface {
	List(ctx context.Context, userID int64) ([]domain.Address, error)
	Create(ctx context.Context, addr *domain.Address) error
}
