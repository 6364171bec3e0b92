package main

import (
	"context"
	"os"

	"overcooked-ordering/config"
	httpapi "overcooked-ordering/order-svc/internal/api/http"
	"overcooked-ordering/order-svc/internal/auth"
	"overcooked-ordering/order-svc/internal/realtime"
	"overcooked-ordering/order-svc/internal/service"
	"overcooked-ordering/order-svc/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "order-svc").Logger()

func main() {
	config.LoadEnv()
	cfg := config.Load()
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	db := config.MustInitPostgres()
	defer db.Close()

	ctx := context.Background()
	if err := storage.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure schema")
	}
	if err := storage.EnsureDefaultVenue(ctx, db, cfg.DefaultVenueID); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure default venue")
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.OrderEventsTopic)
	defer writer.Close()

	store := storage.NewStore(db)
	hub := realtime.NewHub()
	events := service.NewOrderEvents(storage.NewKafkaPublisher(writer), hub)
	catalog := service.NewCatalogGateway()
	coupons := service.NewCouponValidator()

	orchestrator := service.NewCheckoutOrchestrator(catalog, coupons, service.CheckoutConfig{
		DefaultVenueID: cfg.DefaultVenueID,
		StrictItems:    cfg.StrictCheckout,
	})

	handler := httpapi.NewHandler(httpapi.Services{
		Catalog:      service.NewCatalogService(store, cfg.DefaultVenueID),
		Checkout:     service.NewCheckoutService(store, orchestrator, storage.NewIdempotencyCache(rdb, cfg.IdempotencyTTL), events),
		Orders:       service.NewOrderService(store, catalog, service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, events, cfg.DefaultVenueID),
		Coupons:      service.NewCouponService(store, coupons, service.NewClaimLedger()),
		Reservations: service.NewReservationService(store, service.NewReservationManager(cfg.DefaultVenueID)),
		Addresses:    service.NewAddressService(store),
		Kitchen:      hub,
	}, auth.NewJWTValidator(cfg.JWTSecret))

	router := httpapi.NewRouter(handler, httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	if err := httpapi.StartServer(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
