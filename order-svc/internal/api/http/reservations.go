package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"overcooked-ordering/order-svc/internal/domain"
)

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	venueID, err := queryInt64(r, "venue_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid venue_id")
		return
	}
	tables, err := h.Reservations.ListTables(r.Context(), venueID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var table domain.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Reservations.CreateTable(r.Context(), &table); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	slot, err := strconv.Atoi(q.Get("slot"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "slot is required")
		return
	}
	person, err := strconv.Atoi(q.Get("person"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "person is required")
		return
	}
	venueID, err := queryInt64(r, "venue_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid venue_id")
		return
	}

	tables, err := h.Reservations.CheckAvailability(r.Context(), domain.AvailabilityQuery{
		VenueID:   venueID,
		Slot:      slot,
		Date:      q.Get("date"),
		PartySize: person,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reservations.ListReservations(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.Reservations.CreateReservation(r.Context(), req, currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	caller := currentUser(r)
	outcome, err := h.Reservations.CancelReservation(r.Context(), id, domain.Actor{UserID: caller.UserID, Staff: caller.IsStaff()})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !outcome.Cancelled {
		writeMessage(w, http.StatusNotFound, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) getWaitings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reservations.ListWaitings(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createWaiting(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	waiting, err := h.Reservations.CreateWaiting(r.Context(), req, currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, waiting)
}

func (h *Handler) getAddresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.Addresses.List(r.Context(), currentUser(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addrs)
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	addr.UserID = currentUser(r).UserID
	if err := h.Addresses.Create(r.Context(), &addr); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}
