package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)

type Coupon struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	DiscountType      DiscountKind     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinOrderValue     decimal.Decimal  `json:"min_order_value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	ValidFrom         time.Time        `json:"valid_from"`
	ValidUntil        time.Time        `json:"valid_until"`
	IsActive          bool             `json:"is_active"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Discount computes the bounded discount for subtotal. The result is never
// negative and never exceeds subtotal.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscountAmount != nil && discount.GreaterThan(*c.MaxDiscountAmount) {
			discount = *c.MaxDiscountAmount
		}
	case DiscountFlat:
		discount = c.DiscountValue
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount.Round(2)
}

type CouponClaim struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CouponID  int64     `json:"coupon_id"`
	Code      string    `json:"code"`
	ClaimedAt time.Time `json:"claimed_at"`
}

type CouponQuote struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}
