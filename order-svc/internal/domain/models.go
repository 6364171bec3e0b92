package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Food struct {
	ID          int64           `json:"id"`
	VenueID     int64           `json:"venue_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsVeg       bool            `json:"is_veg"`
	Variants    []Variant       `json:"variants"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Variant struct {
	ID     int64           `json:"id"`
	FoodID int64           `json:"food_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// MenuFilter narrows GET /api/menu. Zero values mean "no filter".
type MenuFilter struct {
	VenueID  int64
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	IsVeg    *bool
	Sort     string
	// Limit and Offset page through the sorted menu.
	Limit  int
	Offset int
}

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FoodID    int64     `json:"food_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

type FavoriteToggle struct {
	FoodID int64  `json:"food_id"`
	Status string `json:"status"`
}

type Address struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Label      string    `json:"label"`
	Line1      string    `json:"line1"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type Order struct {
	ID           int64           `json:"id"`
	BatchID      string          `json:"batch_id"`
	VenueID      int64           `json:"venue_id"`
	FoodID       int64           `json:"food_id"`
	VariantID    *int64          `json:"variant_id,omitempty"`
	UserID       int64           `json:"user_id"`
	AddressID    *int64          `json:"address_id,omitempty"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LineTotal is the unit price snapshot times quantity.
func (o Order) LineTotal() decimal.Decimal {
	return o.PriceAtOrder.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

type CartItem struct {
	FoodID    int64  `json:"food_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items      []CartItem `json:"items"`
	AddressID  *int64     `json:"address_id,omitempty"`
	CouponCode string     `json:"coupon_code,omitempty"`
	VenueID    *int64     `json:"venue_id,omitempty"`
}

type BatchSummary struct {
	BatchID        string          `json:"batch_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	Items          []Order         `json:"items"`
}

type OrderRequest struct {
	FoodID    int64  `json:"food_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	AddressID *int64 `json:"address_id,omitempty"`
	VenueID   *int64 `json:"venue_id,omitempty"`
}
