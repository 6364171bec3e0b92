package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func (h *Handler) getVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Catalog.ListVenues(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (h *Handler) createVenue(w http.ResponseWriter, r *http.Request) {
	var venue domain.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Catalog.CreateVenue(r.Context(), &venue); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMenuFilter(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	foods, err := h.Catalog.ListMenu(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func parseMenuFilter(r *http.Request) (domain.MenuFilter, error) {
	q := r.URL.Query()
	filter := domain.MenuFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}

	venueID, err := queryInt64(r, "venue_id")
	if err != nil {
		return filter, err
	}
	filter.VenueID = venueID

	if raw := q.Get("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &v
	}
	if raw := q.Get("is_veg"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.IsVeg = &v
	}

	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		return filter, err
	}
	offsetKey := "offset"
	if q.Get(offsetKey) == "" {
		offsetKey = "skip"
	}
	if filter.Offset, err = queryInt(r, offsetKey); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	var food domain.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Catalog.CreateFood(r.Context(), &food); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	foodID, _ := pathID(r, "id")
	toggle, err := h.Catalog.ToggleFavorite(r.Context(), currentUser(r).UserID, foodID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggle)
}

func (h *Handler) getFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Catalog.ListFavorites(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (h *Handler) getCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Coupons.ListActive(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}

func (h *Handler) createCoupon(w http.ResponseWriter, r *http.Request) {
	coupon := domain.Coupon{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Coupons.Create(r.Context(), &coupon); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, coupon)
}

func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code      string          `json:"code"`
		CartTotal decimal.Decimal `json:"cart_total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.Coupons.Quote(r.Context(), body.Code, body.CartTotal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) claimCoupon(w http.ResponseWriter, r *http.Request) {
	claim, err := h.Coupons.Claim(r.Context(), mux.Vars(r)["code"], currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (h *Handler) getMyCoupons(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Coupons.Claims(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}
