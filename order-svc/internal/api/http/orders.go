package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.Checkout.Checkout(r.Context(), req, currentUser(r).UserID, r.Header.Get("Idempotency-Key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.Create(r.Context(), req, currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListForUser(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// getOrder hides other users' orders behind a 404 unless the caller is staff.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if caller := currentUser(r); order.UserID != caller.UserID && !caller.IsStaff() {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Orders.Batch(r.Context(), mux.Vars(r)["batchId"], currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (h *Handler) getBatchQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.BatchQRCode(r.Context(), mux.Vars(r)["batchId"], currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) getKitchenOrders(w http.ResponseWriter, r *http.Request) {
	venueID, err := queryInt64(r, "venue_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid venue_id")
		return
	}
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.Orders.ListByStatus(r.Context(), status, venueID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) kitchenFeed(w http.ResponseWriter, r *http.Request) {
	if h.Kitchen == nil {
		writeMessage(w, http.StatusServiceUnavailable, "kitchen feed disabled")
		return
	}
	venueID, err := queryInt64(r, "venue_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid venue_id")
		return
	}
	h.Kitchen.ServeWS(w, r, venueID)
}
