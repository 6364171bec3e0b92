package tests

import (
	"context"
	"encoding/json"
	"testing"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/mocks"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCheckout(store *memStore, strict bool, idem service.IdempotencyStore, events *service.OrderEvents) *service.CheckoutService {
	orchestrator := service.NewCheckoutOrchestrator(service.NewCatalogGateway(), service.NewCouponValidator(), service.CheckoutConfig{
		DefaultVenueID: 1,
		StrictItems:    strict,
	})
	return service.NewCheckoutService(store, orchestrator, idem, events)
}

func TestCheckout_AppliesCappedCoupon(t *testing.T) {
	store := newMemStore()
	fx := seedMenu(store)
	seedCoupon(store, domain.Coupon{
		Code:              "SAVE50",
		DiscountType:      domain.DiscountPercentage,
		DiscountValue:     dec("50"),
		MaxDiscountAmount: decPtr("50"),
	})

	publisher := mocks.NewEventPublisher(t)
	notifier := mocks.NewNotifier(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated
	})).Return(nil).Twice()
	notifier.On("Broadcast", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return().Twice()

	svc := newCheckout(store, false, nil, service.NewOrderEvents(publisher, notifier))
	summary, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items: []domain.CartItem{
			{FoodID: fx.burger.ID, Quantity: 2},
			{FoodID: fx.pizza.ID, VariantID: int64Ptr(fx.largePizza.ID), Quantity: 1},
		},
		AddressID:  int64Ptr(fx.addressID),
		CouponCode: "save50",
	}, 7, "")

	require.NoError(t, err)
	assert.True(t, summary.TotalAmount.Equal(dec("400")))
	assert.True(t, summary.DiscountAmount.Equal(dec("50")))
	assert.True(t, summary.FinalAmount.Equal(dec("350")))
	assert.Equal(t, "success", summary.Status)
	assert.Equal(t, "Order placed successfully", summary.Message)
	require.Len(t, summary.Items, 2)

	for _, line := range summary.Items {
		assert.Equal(t, summary.BatchID, line.BatchID)
		assert.Equal(t, domain.StatusCreated, line.Status)
		assert.Equal(t, fx.venueID, line.VenueID)
		assert.Equal(t, int64(7), line.UserID)
	}
	assert.Nil(t, summary.Items[0].VariantID)
	assert.True(t, summary.Items[1].PriceAtOrder.Equal(dec("200")))
	if assert.NotNil(t, summary.Items[1].VariantID) {
		assert.Equal(t, fx.largePizza.ID, *summary.Items[1].VariantID)
	}
	assert.Len(t, store.snapshot().orders, 2)
}

func TestCheckout_RollsBackOnRejection(t *testing.T) {
	tests := []struct {
		name    string
		req     func(menuFixture) domain.CheckoutRequest
		strict  bool
		wantErr error
	}{
		{
			name: "coupon minimum not met",
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{
					Items:      []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 4}},
					CouponCode: "BIGSPENDER",
				}
			},
			wantErr: service.ErrBelowMinimumOrder,
		},
		{
			name: "unknown coupon",
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{
					Items:      []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
					CouponCode: "NOPE",
				}
			},
			wantErr: service.ErrInvalidCoupon,
		},
		{
			name: "address owned by someone else",
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{
					Items:     []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
					AddressID: int64Ptr(999),
				}
			},
			wantErr: service.ErrInvalidAddress,
		},
		{
			name: "empty cart",
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{}
			},
			wantErr: service.ErrEmptyCart,
		},
		{
			name: "zero quantity",
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 0}}}
			},
			wantErr: service.ErrInvalidQuantity,
		},
		{
			name:   "strict mode with unknown food",
			strict: true,
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{Items: []domain.CartItem{
					{FoodID: fx.burger.ID, Quantity: 1},
					{FoodID: 999, Quantity: 1},
				}}
			},
			wantErr: service.ErrFoodNotFound,
		},
		{
			name:   "strict mode with foreign variant",
			strict: true,
			req: func(fx menuFixture) domain.CheckoutRequest {
				return domain.CheckoutRequest{Items: []domain.CartItem{
					{FoodID: fx.burger.ID, VariantID: int64Ptr(fx.largePizza.ID), Quantity: 1},
				}}
			},
			wantErr: service.ErrFoodNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newMemStore()
			fx := seedMenu(store)
			seedCoupon(store, domain.Coupon{Code: "BIGSPENDER", DiscountType: domain.DiscountFlat, DiscountValue: dec("20"), MinOrderValue: dec("500")})
			publisher := mocks.NewEventPublisher(t)

			svc := newCheckout(store, testCase.strict, nil, service.NewOrderEvents(publisher, nil))
			summary, err := svc.Checkout(context.Background(), testCase.req(fx), 7, "")

			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, summary)
			assert.Empty(t, store.snapshot().orders)
			publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckout_LenientSkipsUnresolvedItems(t *testing.T) {
	store := newMemStore()
	fx := seedMenu(store)
	svc := newCheckout(store, false, nil, nil)

	summary, err := svc.Checkout(context.Background(), domain.CheckoutRequest{Items: []domain.CartItem{
		{FoodID: fx.burger.ID, Quantity: 1},
		{FoodID: 999, Quantity: 3},
		{FoodID: fx.burger.ID, VariantID: int64Ptr(fx.largePizza.ID), Quantity: 1},
	}}, 7, "")

	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.True(t, summary.TotalAmount.Equal(dec("100")))
	assert.Len(t, store.snapshot().orders, 1)
}

func TestCheckout_VenueResolution(t *testing.T) {
	store := newMemStore()
	fx := seedMenu(store)
	orphan := domain.Food{Name: "Orphan", Price: dec("10")}
	store.seed(func(tx service.Tx) error {
		return tx.CreateFood(context.Background(), &orphan)
	})
	svc := newCheckout(store, false, nil, nil)
	ctx := context.Background()

	summary, err := svc.Checkout(ctx, domain.CheckoutRequest{
		Items:   []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
		VenueID: int64Ptr(42),
	}, 7, "")
	require.NoError(t, err)
	assert.Equal(t, int64(42), summary.Items[0].VenueID)

	summary, err = svc.Checkout(ctx, domain.CheckoutRequest{Items: []domain.CartItem{{FoodID: orphan.ID, Quantity: 1}}}, 7, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Items[0].VenueID)
}

func TestCheckout_PriceSnapshotSurvivesMenuChange(t *testing.T) {
	store := newMemStore()
	fx := seedMenu(store)
	svc := newCheckout(store, false, nil, nil)

	summary, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
	}, 7, "")
	require.NoError(t, err)

	store.seed(func(tx service.Tx) error {
		mt := tx.(*memTx)
		food := mt.s.foods[fx.burger.ID]
		food.Price = dec("999.00")
		mt.s.foods[fx.burger.ID] = food
		return nil
	})

	orders := service.NewOrderService(store, service.NewCatalogGateway(), nil, nil, 1)
	order, err := orders.Get(context.Background(), summary.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, order.PriceAtOrder.Equal(dec("100")))

	updated, err := orders.UpdateStatus(context.Background(), order.ID, domain.StatusProgress)
	require.NoError(t, err)
	assert.True(t, updated.PriceAtOrder.Equal(dec("100")))
}

func TestCheckout_Idempotency(t *testing.T) {
	const key = "checkout:7:abc"

	t.Run("first request stores summary", func(t *testing.T) {
		store := newMemStore()
		fx := seedMenu(store)
		idem := mocks.NewIdempotencyStore(t)
		idem.On("Reserve", mock.Anything, key).Return(nil, nil).Once()
		idem.On("Complete", mock.Anything, key, mock.AnythingOfType("[]uint8")).Return(nil).Once()

		summary, err := newCheckout(store, false, idem, nil).Checkout(context.Background(), domain.CheckoutRequest{
			Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
		}, 7, "abc")

		require.NoError(t, err)
		assert.NotEmpty(t, summary.BatchID)
	})

	t.Run("replay returns cached summary", func(t *testing.T) {
		store := newMemStore()
		fx := seedMenu(store)
		cached, _ := json.Marshal(domain.BatchSummary{BatchID: "b-1", TotalAmount: dec("100"), Status: "success"})
		idem := mocks.NewIdempotencyStore(t)
		idem.On("Reserve", mock.Anything, key).Return(cached, nil).Once()

		summary, err := newCheckout(store, false, idem, nil).Checkout(context.Background(), domain.CheckoutRequest{
			Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
		}, 7, "abc")

		require.NoError(t, err)
		assert.Equal(t, "b-1", summary.BatchID)
		assert.Empty(t, store.snapshot().orders)
	})

	t.Run("in flight", func(t *testing.T) {
		idem := mocks.NewIdempotencyStore(t)
		idem.On("Reserve", mock.Anything, key).Return(nil, service.ErrRequestInFlight).Once()

		_, err := newCheckout(newMemStore(), false, idem, nil).Checkout(context.Background(), domain.CheckoutRequest{
			Items: []domain.CartItem{{FoodID: 1, Quantity: 1}},
		}, 7, "abc")

		assert.ErrorIs(t, err, service.ErrRequestInFlight)
	})

	t.Run("failure releases key", func(t *testing.T) {
		idem := mocks.NewIdempotencyStore(t)
		idem.On("Reserve", mock.Anything, key).Return(nil, nil).Once()
		idem.On("Release", mock.Anything, key).Return(nil).Once()

		_, err := newCheckout(newMemStore(), false, idem, nil).Checkout(context.Background(), domain.CheckoutRequest{}, 7, "abc")

		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("store outage degrades to plain checkout", func(t *testing.T) {
		store := newMemStore()
		fx := seedMenu(store)
		idem := mocks.NewIdempotencyStore(t)
		idem.On("Reserve", mock.Anything, key).Return(nil, assert.AnError).Once()

		summary, err := newCheckout(store, false, idem, nil).Checkout(context.Background(), domain.CheckoutRequest{
			Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
		}, 7, "abc")

		require.NoError(t, err)
		assert.Len(t, summary.Items, 1)
	})
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	store := newMemStore()
	fx := seedMenu(store)
	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	summary, err := newCheckout(store, false, nil, service.NewOrderEvents(publisher, nil)).Checkout(context.Background(), domain.CheckoutRequest{
		Items: []domain.CartItem{{FoodID: fx.burger.ID, Quantity: 1}},
	}, 7, "")

	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}
