package storage

import (
	"context"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"
)

const slotColumns = `id, venue_id, table_id, user_id, slot, to_char(r_date, 'YYYY-MM-DD'), created_at`

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO tables (venue_id, name, seat) VALUES ($1, $2, $3) RETURNING id, created_at",
		table.VenueID, table.Name, table.Seat).Scan(&table.ID, &table.CreatedAt)
}

func (r *PostgresRepository) ListTables(ctx context.Context, venueID int64) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, venue_id, name, seat, created_at FROM tables WHERE venue_id = $1 ORDER BY name, id", venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Name, &t.Seat, &t.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	var t domain.Table
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, venue_id, name, seat, created_at FROM tables WHERE id = $1", id).
		Scan(&t.ID, &t.VenueID, &t.Name, &t.Seat, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PostgresRepository) ReservedTableIDs(ctx context.Context, venueID int64, slot int, date string) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT table_id FROM reservations WHERE venue_id = $1 AND slot = $2 AND r_date = $3",
		venueID, slot, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) ReservationExists(ctx context.Context, key domain.SlotKey) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM reservations WHERE table_id = $1 AND slot = $2 AND r_date = $3)",
		key.TableID, key.Slot, key.Date).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO reservations (venue_id, table_id, user_id, slot, r_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		res.VenueID, res.TableID, res.UserID, res.Slot, res.Date).
		Scan(&res.ID, &res.CreatedAt)
	return conflict(err, constraintReservationSlot, service.ErrSlotTaken)
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.DB.QueryRowContext(ctx, "SELECT "+slotColumns+" FROM reservations WHERE id = $1 FOR UPDATE", id).
		Scan(&res.ID, &res.VenueID, &res.TableID, &res.UserID, &res.Slot, &res.Date, &res.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *PostgresRepository) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListReservationsByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+slotColumns+" FROM reservations WHERE user_id = $1 ORDER BY r_date, slot, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.VenueID, &res.TableID, &res.UserID, &res.Slot, &res.Date, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateWaiting(ctx context.Context, w *domain.Waiting) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO waitings (venue_id, table_id, user_id, slot, r_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		w.VenueID, w.TableID, w.UserID, w.Slot, w.Date).
		Scan(&w.ID, &w.CreatedAt)
}

func (r *PostgresRepository) NextWaiting(ctx context.Context, key domain.SlotKey) (*domain.Waiting, error) {
	var w domain.Waiting
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+slotColumns+`
		FROM waitings
		WHERE table_id = $1 AND slot = $2 AND r_date = $3
		ORDER BY created_at, id
		LIMIT 1
		FOR UPDATE`, key.TableID, key.Slot, key.Date).
		Scan(&w.ID, &w.VenueID, &w.TableID, &w.UserID, &w.Slot, &w.Date, &w.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (r *PostgresRepository) DeleteWaiting(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM waitings WHERE id = $1", id)
	return err
}

func (r *PostgresRepository) ListWaitingsByUser(ctx context.Context, userID int64) ([]domain.Waiting, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+slotColumns+" FROM waitings WHERE user_id = $1 ORDER BY created_at, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Waiting{}
	for rows.Next() {
		var w domain.Waiting
		if err := rows.Scan(&w.ID, &w.VenueID, &w.TableID, &w.UserID, &w.Slot, &w.Date, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
