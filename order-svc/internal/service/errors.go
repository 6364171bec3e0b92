package service

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrFoodNotFound            = errors.New("food not found")
	ErrInvalidAddress          = errors.New("invalid address id")
	ErrInvalidCoupon           = errors.New("invalid or expired coupon")
	ErrBelowMinimumOrder       = errors.New("minimum order value not met")
	ErrSlotTaken               = errors.New("table already reserved for this slot")
	ErrAlreadyClaimed          = errors.New("coupon already claimed")
	ErrDuplicateCoupon         = errors.New("coupon code already exists")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidInput            = errors.New("invalid input")
	ErrRequestInFlight         = errors.New("request with this idempotency key is in progress")
)
