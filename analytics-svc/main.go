package main

import (
	"os"

	httpapi "overcooked-ordering/analytics-svc/internal/api/http"
	"overcooked-ordering/analytics-svc/internal/service"
	"overcooked-ordering/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "analytics-svc").Logger()

func main() {
	config.LoadEnv()
	decimal.MarshalJSONWithoutQuotes = true

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	handler := httpapi.NewHandler(service.NewAnalyticsService(db, rdb))
	if err := httpapi.StartServer(":"+config.GetEnv("PORT", "8083"), httpapi.NewRouter(handler)); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
