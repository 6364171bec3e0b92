package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"overcooked-ordering/agg-svc/internal/service"
	"overcooked-ordering/agg-svc/internal/storage"
	"overcooked-ordering/config"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "agg-svc").Logger()

func main() {
	config.LoadEnv()
	cfg := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storage.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.OrderEventsTopic, "agg-svc-consumer")
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(db, rdb, cfg.AnalyticsCacheTTL))
	consumer.Start(ctx)
}
