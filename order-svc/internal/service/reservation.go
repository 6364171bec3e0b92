package service

import (
	"context"
	"errors"
	"fmt"

	"overcooked-ordering/order-svc/internal/domain"
)

// ReservationManager enforces one reservation per (table, slot, date) and
// promotes waiting parties when a reservation is cancelled. It is stateless:
// every call works through the repository handle it is given.
type ReservationManager struct {
	defaultVenueID int64
}

func NewReservationManager(defaultVenueID int64) *ReservationManager {
	return &ReservationManager{defaultVenueID: defaultVenueID}
}

func (m *ReservationManager) CheckAvailability(ctx context.Context, repo ReservationRepository, q domain.AvailabilityQuery) ([]domain.Table, error) {
	if q.VenueID == 0 {
		q.VenueID = m.defaultVenueID
	}
	date, err := domain.NormalizeDate(q.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if q.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}

	tables, err := repo.ListTables(ctx, q.VenueID)
	if err != nil {
		return nil, err
	}
	reserved, err := repo.ReservedTableIDs(ctx, q.VenueID, q.Slot, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[int64]struct{}, len(reserved))
	for _, id := range reserved {
		taken[id] = struct{}{}
	}

	available := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if t.Seat < q.PartySize {
			continue
		}
		if _, ok := taken[t.ID]; ok {
			continue
		}
		available = append(available, t)
	}
	return available, nil
}

// Create reserves a slot. The existence check only short-circuits the common
// case; the store's unique key on (table, slot, date) decides races and
// surfaces as ErrSlotTaken either way.
func (m *ReservationManager) Create(ctx context.Context, repo ReservationRepository, req domain.ReservationRequest, userID int64) (*domain.Reservation, error) {
	r, err := m.newReservation(ctx, repo, req, userID)
	if err != nil {
		return nil, err
	}

	exists, err := repo.ReservationExists(ctx, r.Key())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlotTaken
	}
	if err := repo.CreateReservation(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Cancel deletes a reservation and hands the freed slot to the oldest waiting
// party for it. A missing reservation, or one the actor does not own, yields
// Cancelled=false and no error.
func (m *ReservationManager) Cancel(ctx context.Context, repo ReservationRepository, id int64, actor domain.Actor) (*domain.CancelOutcome, error) {
	r, err := repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &domain.CancelOutcome{Cancelled: false}, nil
		}
		return nil, err
	}
	if !actor.Owns(*r) {
		return &domain.CancelOutcome{Cancelled: false}, nil
	}

	n, err := repo.DeleteReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &domain.CancelOutcome{Cancelled: false}, nil
	}

	outcome := &domain.CancelOutcome{Cancelled: true}
	next, err := repo.NextWaiting(ctx, r.Key())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome, nil
		}
		return nil, err
	}

	if err := repo.DeleteWaiting(ctx, next.ID); err != nil {
		return nil, err
	}
	promoted := &domain.Reservation{
		VenueID: next.VenueID,
		TableID: next.TableID,
		UserID:  next.UserID,
		Slot:    next.Slot,
		Date:    next.Date,
	}
	if err := repo.CreateReservation(ctx, promoted); err != nil {
		return nil, err
	}
	outcome.Promoted = promoted
	return outcome, nil
}

// CreateWaiting appends to the waitlist unconditionally.
func (m *ReservationManager) CreateWaiting(ctx context.Context, repo ReservationRepository, req domain.ReservationRequest, userID int64) (*domain.Waiting, error) {
	r, err := m.newReservation(ctx, repo, req, userID)
	if err != nil {
		return nil, err
	}
	w := &domain.Waiting{
		VenueID: r.VenueID,
		TableID: r.TableID,
		UserID:  r.UserID,
		Slot:    r.Slot,
		Date:    r.Date,
	}
	if err := repo.CreateWaiting(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (m *ReservationManager) newReservation(ctx context.Context, repo ReservationRepository, req domain.ReservationRequest, userID int64) (*domain.Reservation, error) {
	date, err := domain.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.TableID <= 0 {
		return nil, fmt.Errorf("%w: table_id is required", ErrInvalidInput)
	}

	table, err := repo.GetTable(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	venueID := table.VenueID
	if req.VenueID != nil && *req.VenueID > 0 && *req.VenueID != table.VenueID {
		return nil, fmt.Errorf("%w: table %d is not in venue %d", ErrInvalidInput, table.ID, *req.VenueID)
	}

	return &domain.Reservation{
		VenueID: venueID,
		TableID: table.ID,
		UserID:  userID,
		Slot:    req.Slot,
		Date:    date,
	}, nil
}

type ReservationService struct {
	store   Store
	manager *ReservationManager
}

func NewReservationService(store Store, manager *ReservationManager) *ReservationService {
	return &ReservationService{store: store, manager: manager}
}

func (s *ReservationService) CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Table, error) {
	var tables []domain.Table
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		tables, err = s.manager.CheckAvailability(ctx, tx, q)
		return err
	})
	return tables, err
}

func (s *ReservationService) CreateReservation(ctx context.Context, req domain.ReservationRequest, userID int64) (*domain.Reservation, error) {
	var r *domain.Reservation
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		r, err = s.manager.Create(ctx, tx, req, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("reservation_id", r.ID).Int64("table_id", r.TableID).Int("slot", r.Slot).Str("date", r.Date).Msg("Reservation created")
	return r, nil
}

func (s *ReservationService) CancelReservation(ctx context.Context, id int64, actor domain.Actor) (*domain.CancelOutcome, error) {
	var outcome *domain.CancelOutcome
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		outcome, err = s.manager.Cancel(ctx, tx, id, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	if outcome.Promoted != nil {
		logger.Info().Int64("cancelled_id", id).Int64("promoted_id", outcome.Promoted.ID).Int64("user_id", outcome.Promoted.UserID).Msg("Waiting party promoted")
	}
	return outcome, nil
}

func (s *ReservationService) CreateWaiting(ctx context.Context, req domain.ReservationRequest, userID int64) (*domain.Waiting, error) {
	var w *domain.Waiting
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		w, err = s.manager.CreateWaiting(ctx, tx, req, userID)
		return err
	})
	return w, err
}

func (s *ReservationService) ListReservations(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		out, err = tx.ListReservationsByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *ReservationService) ListWaitings(ctx context.Context, userID int64) ([]domain.Waiting, error) {
	var out []domain.Waiting
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		out, err = tx.ListWaitingsByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *ReservationService) CreateTable(ctx context.Context, table *domain.Table) error {
	if table.Seat < 1 {
		return fmt.Errorf("%w: seat must be at least 1", ErrInvalidInput)
	}
	if table.VenueID == 0 {
		table.VenueID = s.manager.defaultVenueID
	}
	return s.store.WithinTx(ctx, func(tx Tx) error {
		return tx.CreateTable(ctx, table)
	})
}

func (s *ReservationService) ListTables(ctx context.Context, venueID int64) ([]domain.Table, error) {
	if venueID == 0 {
		venueID = s.manager.defaultVenueID
	}
	var tables []domain.Table
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		tables, err = tx.ListTables(ctx, venueID)
		return err
	})
	return tables, err
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
