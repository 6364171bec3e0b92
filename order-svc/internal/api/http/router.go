package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, limiter *RateLimiter) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestID, RequestLogger)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	handler.RegisterRoutes(r)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) error {
	logger.Info().Str("addr", addr).Msg("Order Service starting")
	return http.ListenAndServe(addr, handler)
}
