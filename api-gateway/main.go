package main

import (
	"net/http"
	"os"
	"time"

	"overcooked-ordering/api-gateway/internal/gateway"
	"overcooked-ordering/config"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "api-gateway").Logger()

func main() {
	config.LoadEnv()
	cfg := config.Load()

	gw := gateway.NewGateway(gateway.Config{
		OrderSvcURL:     cfg.OrderSvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
	}, &http.Client{Timeout: 30 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
	})
	handler := c.Handler(gw.SetupRoutes())

	addr := ":" + config.GetEnv("GATEWAY_PORT", "8080")
	logger.Info().Str("addr", addr).Msg("API Gateway starting")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
