package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CouponValidator computes discounts. It never marks a coupon as used, so a
// code stays reusable across checkouts.
type CouponValidator struct{}

func NewCouponValidator() *CouponValidator {
	return &CouponValidator{}
}

func (v *CouponValidator) Validate(ctx context.Context, repo CouponRepository, code string, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, *domain.Coupon, error) {
	coupon, err := repo.GetActiveCoupon(ctx, normalizeCode(code), now)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return decimal.Zero, nil, ErrInvalidCoupon
		}
		return decimal.Zero, nil, err
	}
	if now.Before(coupon.ValidFrom) {
		return decimal.Zero, nil, ErrInvalidCoupon
	}
	if subtotal.LessThan(coupon.MinOrderValue) {
		return decimal.Zero, nil, fmt.Errorf("%w: Minimum order value is %s", ErrBelowMinimumOrder, coupon.MinOrderValue.StringFixed(2))
	}
	return coupon.Discount(subtotal), coupon, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ClaimLedger records which user holds which coupon, once per pair.
type ClaimLedger struct{}

func NewClaimLedger() *ClaimLedger {
	return &ClaimLedger{}
}

func (l *ClaimLedger) Claim(ctx context.Context, tx Tx, code string, userID int64, now time.Time) (*domain.CouponClaim, error) {
	coupon, err := tx.GetActiveCoupon(ctx, normalizeCode(code), now)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}
	if now.Before(coupon.ValidFrom) {
		return nil, ErrInvalidCoupon
	}

	claim := &domain.CouponClaim{UserID: userID, CouponID: coupon.ID, Code: coupon.Code, ClaimedAt: now}
	if err := tx.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

type CouponService struct {
	store     Store
	validator *CouponValidator
	ledger    *ClaimLedger
	now       func() time.Time
}

func NewCouponService(store Store, validator *CouponValidator, ledger *ClaimLedger) *CouponService {
	return &CouponService{store: store, validator: validator, ledger: ledger, now: time.Now}
}

func (s *CouponService) Create(ctx context.Context, coupon *domain.Coupon) error {
	coupon.Code = normalizeCode(coupon.Code)
	if coupon.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		if coupon.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: percentage discount above 100", ErrInvalidInput)
		}
	case domain.DiscountFlat:
	default:
		return fmt.Errorf("%w: discount_type must be percentage or flat", ErrInvalidInput)
	}
	if !coupon.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount_value must be positive", ErrInvalidInput)
	}
	if coupon.MinOrderValue.IsNegative() {
		return fmt.Errorf("%w: min_order_value must not be negative", ErrInvalidInput)
	}
	if coupon.MaxDiscountAmount != nil && coupon.MaxDiscountAmount.IsNegative() {
		return fmt.Errorf("%w: max_discount_amount must not be negative", ErrInvalidInput)
	}
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = s.now()
	}
	if coupon.ValidUntil.Before(coupon.ValidFrom) {
		return fmt.Errorf("%w: valid_until precedes valid_from", ErrInvalidInput)
	}

	return s.store.WithinTx(ctx, func(tx Tx) error {
		return tx.CreateCoupon(ctx, coupon)
	})
}

func (s *CouponService) ListActive(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		coupons, err = tx.ListActiveCoupons(ctx, s.now())
		return err
	})
	return coupons, err
}

// Quote previews a coupon against a cart total without touching any order.
func (s *CouponService) Quote(ctx context.Context, code string, cartTotal decimal.Decimal) (*domain.CouponQuote, error) {
	var quote *domain.CouponQuote
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		discount, coupon, err := s.validator.Validate(ctx, tx, code, cartTotal, s.now())
		if err != nil {
			return err
		}
		quote = &domain.CouponQuote{
			Valid:          true,
			Code:           coupon.Code,
			DiscountAmount: discount,
			FinalAmount:    cartTotal.Sub(discount),
		}
		return nil
	})
	return quote, err
}

func (s *CouponService) Claim(ctx context.Context, code string, userID int64) (*domain.CouponClaim, error) {
	var claim *domain.CouponClaim
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		claim, err = s.ledger.Claim(ctx, tx, code, userID, s.now())
		return err
	})
	return claim, err
}

func (s *CouponService) Claims(ctx context.Context, userID int64) ([]domain.CouponClaim, error) {
	var claims []domain.CouponClaim
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		claims, err = tx.ListClaims(ctx, userID)
		return err
	})
	return claims, err
}

var _ CouponServiceInterface = (*CouponService)(nil)
