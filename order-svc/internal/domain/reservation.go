package domain

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// NormalizeDate validates a reservation date and returns it in canonical form.
func NormalizeDate(raw string) (string, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

type Table struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	Name      int       `json:"name"`
	Seat      int       `json:"seat"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotKey identifies the exclusive unit of reservation.
type SlotKey struct {
	TableID int64
	Slot    int
	Date    string
}

type Reservation struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	TableID   int64     `json:"table_id"`
	UserID    int64     `json:"user_id"`
	Slot      int       `json:"slot"`
	Date      string    `json:"r_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Reservation) Key() SlotKey {
	return SlotKey{TableID: r.TableID, Slot: r.Slot, Date: r.Date}
}

type Waiting struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	TableID   int64     `json:"table_id"`
	UserID    int64     `json:"user_id"`
	Slot      int       `json:"slot"`
	Date      string    `json:"r_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (w Waiting) Key() SlotKey {
	return SlotKey{TableID: w.TableID, Slot: w.Slot, Date: w.Date}
}

type ReservationRequest struct {
	VenueID *int64 `json:"venue_id,omitempty"`
	TableID int64  `json:"table_id"`
	Slot    int    `json:"slot"`
	Date    string `json:"r_date"`
}

type AvailabilityQuery struct {
	VenueID   int64
	Slot      int
	Date      string
	PartySize int
}

// CancelOutcome reports what a cancellation did. Promoted is set when a
// waiting party took over the freed slot.
type CancelOutcome struct {
	Cancelled bool         `json:"cancelled"`
	Promoted  *Reservation `json:"promoted,omitempty"`
}

// Actor is the caller behind a reservation change. Staff act on any
// reservation; everyone else only on their own.
type Actor struct {
	UserID int64
	Staff  bool
}

func (a Actor) Owns(r Reservation) bool {
	return a.Staff || r.UserID == a.UserID
}
