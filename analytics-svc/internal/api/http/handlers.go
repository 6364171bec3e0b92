package httpapi

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"overcooked-ordering/analytics-svc/internal/domain"
	"overcooked-ordering/analytics-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "analytics-svc").Logger()

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	venue := r.PathPrefix("/api/analytics/venues/{venueId:[0-9]+}").Subrouter()
	venue.HandleFunc("/top-today", h.getTopToday).Methods("GET")
	venue.HandleFunc("/top-alltime", h.getTopAllTime).Methods("GET")
	venue.HandleFunc("/sales", h.getSales).Methods("GET")
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	venueID := venueParam(r)
	data, err := h.Analytics.TopToday(r.Context(), venueID, boundedQuery(r, "limit", domain.DefaultTopLimit, domain.MaxTopLimit))
	if err != nil {
		logger.Warn().Err(err).Int64("venue_id", venueID).Msg("top today unavailable")
		writeJSON(w, http.StatusOK, []domain.FoodAnalytics{})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(data))
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	venueID := venueParam(r)
	data, err := h.Analytics.TopAllTime(r.Context(), venueID, boundedQuery(r, "limit", domain.DefaultTopLimit, domain.MaxTopLimit))
	if err != nil {
		logger.Warn().Err(err).Int64("venue_id", venueID).Msg("top all-time unavailable")
		writeJSON(w, http.StatusOK, []domain.FoodAnalytics{})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(data))
}

func (h *Handler) getSales(w http.ResponseWriter, r *http.Request) {
	venueID := venueParam(r)
	data, err := h.Analytics.Sales(r.Context(), venueID, boundedQuery(r, "days", domain.DefaultSalesDays, domain.MaxSalesDays))
	if err != nil {
		logger.Error().Err(err).Int64("venue_id", venueID).Msg("sales query failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load sales"})
		return
	}
	if data == nil {
		data = []domain.DailySales{}
	}
	writeJSON(w, http.StatusOK, data)
}

func venueParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	return id
}

// boundedQuery reads a positive integer query value, falling back to def
// and capping at ceiling.
func boundedQuery(r *http.Request, key string, def, ceiling int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	if n > ceiling {
		return ceiling
	}
	return n
}

func nonNil(data []domain.FoodAnalytics) []domain.FoodAnalytics {
	if data == nil {
		return []domain.FoodAnalytics{}
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
