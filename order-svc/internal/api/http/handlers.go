package httpapi

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"overcooked-ordering/order-svc/internal/auth"
	"overcooked-ordering/order-svc/internal/realtime"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "order-svc").Str("component", "http").Logger()

type Services struct {
	Catalog      service.CatalogServiceInterface
	Checkout     service.CheckoutServiceInterface
	Orders       service.OrderServiceInterface
	Coupons      service.CouponServiceInterface
	Reservations service.ReservationServiceInterface
	Addresses    service.AddressServiceInterface
	Kitchen      *realtime.Hub
}

type Handler struct {
	Services
	tokens auth.TokenValidator
	mapper *ErrorMapper
}

func NewHandler(svcs Services, tokens auth.TokenValidator) *Handler {
	return &Handler{
		Services: svcs,
		tokens:   tokens,
		mapper:   DefaultErrorMapper(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/venues", h.getVenues).Methods("GET")
	r.HandleFunc("/api/venues", h.admin(h.createVenue)).Methods("POST")
	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.staff(h.createFood)).Methods("POST")
	r.HandleFunc("/api/menu/{id:[0-9]+}/favorite", h.authenticated(h.toggleFavorite)).Methods("POST")

	r.HandleFunc("/api/orders/checkout", h.authenticated(h.checkout)).Methods("POST")
	r.HandleFunc("/api/orders", h.authenticated(h.createOrder)).Methods("POST")
	r.HandleFunc("/api/orders", h.authenticated(h.getOrders)).Methods("GET")
	r.HandleFunc("/api/orders/batches/{batchId}", h.authenticated(h.getBatch)).Methods("GET")
	r.HandleFunc("/api/orders/batches/{batchId}/qrcode", h.authenticated(h.getBatchQRCode)).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.authenticated(h.getOrder)).Methods("GET")

	r.HandleFunc("/api/kitchen/orders", h.staff(h.getKitchenOrders)).Methods("GET")
	r.HandleFunc("/api/kitchen/orders/{id:[0-9]+}/status", h.staff(h.updateOrderStatus)).Methods("PUT")
	r.HandleFunc("/ws/kitchen", h.staff(h.kitchenFeed)).Methods("GET")

	r.HandleFunc("/api/tables", h.authenticated(h.getTables)).Methods("GET")
	r.HandleFunc("/api/tables", h.admin(h.createTable)).Methods("POST")
	r.HandleFunc("/api/reservations/check", h.authenticated(h.checkAvailability)).Methods("POST")
	r.HandleFunc("/api/reservations", h.authenticated(h.getReservations)).Methods("GET")
	r.HandleFunc("/api/reservations", h.authenticated(h.createReservation)).Methods("POST")
	r.HandleFunc("/api/reservations/{id:[0-9]+}", h.authenticated(h.cancelReservation)).Methods("DELETE")
	r.HandleFunc("/api/waitings", h.authenticated(h.getWaitings)).Methods("GET")
	r.HandleFunc("/api/waitings", h.authenticated(h.createWaiting)).Methods("POST")

	r.HandleFunc("/api/coupons", h.getCoupons).Methods("GET")
	r.HandleFunc("/api/coupons", h.admin(h.createCoupon)).Methods("POST")
	r.HandleFunc("/api/coupons/apply", h.applyCoupon).Methods("POST")
	r.HandleFunc("/api/coupons/{code}/claim", h.authenticated(h.claimCoupon)).Methods("POST")
	r.HandleFunc("/api/me/coupons", h.authenticated(h.getMyCoupons)).Methods("GET")
	r.HandleFunc("/api/me/favorites", h.authenticated(h.getFavorites)).Methods("GET")
	r.HandleFunc("/api/me/addresses", h.authenticated(h.getAddresses)).Methods("GET")
	r.HandleFunc("/api/me/addresses", h.authenticated(h.createAddress)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

// queryInt64 parses an optional query parameter; an absent value is 0.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func currentUser(r *http.Request) auth.Identity {
	id, _ := identityFrom(r.Context())
	return id
}
