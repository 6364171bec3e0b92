package tests

import (
	"context"
	"time"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

type menuFixture struct {
	venueID    int64
	burger     domain.Food
	pizza      domain.Food
	largePizza domain.Variant
	addressID  int64
}

// seedMenu loads one venue with a 100.00 burger and a 150.00 pizza whose
// "Large" variant costs 200.00, plus an address owned by user 7.
func seedMenu(store *memStore) menuFixture {
	var fx menuFixture
	store.seed(func(tx service.Tx) error {
		ctx := context.Background()
		venue := &domain.Venue{Name: "Main Kitchen"}
		if err := tx.CreateVenue(ctx, venue); err != nil {
			return err
		}
		fx.venueID = venue.ID

		fx.burger = domain.Food{VenueID: venue.ID, Name: "Burger", Category: "mains", Price: dec("100.00")}
		if err := tx.CreateFood(ctx, &fx.burger); err != nil {
			return err
		}
		fx.pizza = domain.Food{
			VenueID:  venue.ID,
			Name:     "Pizza",
			Category: "mains",
			Price:    dec("150.00"),
			IsVeg:    true,
			Variants: []domain.Variant{{Name: "Large", Price: dec("200.00")}},
		}
		if err := tx.CreateFood(ctx, &fx.pizza); err != nil {
			return err
		}
		fx.largePizza = fx.pizza.Variants[0]

		addr := &domain.Address{UserID: 7, Line1: "1 Main St", City: "Springfield"}
		if err := tx.CreateAddress(ctx, addr); err != nil {
			return err
		}
		fx.addressID = addr.ID
		return nil
	})
	return fx
}

func seedCoupon(store *memStore, c domain.Coupon) domain.Coupon {
	if c.ValidFrom.IsZero() {
		c.ValidFrom = time.Now().Add(-24 * time.Hour)
	}
	if c.ValidUntil.IsZero() {
		c.ValidUntil = time.Now().Add(24 * time.Hour)
	}
	c.IsActive = true
	store.seed(func(tx service.Tx) error {
		return tx.CreateCoupon(context.Background(), &c)
	})
	return c
}
