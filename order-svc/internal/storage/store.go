package storage

import (
	"context"
	"database/sql"
	"errors"

	"overcooked-ordering/order-svc/internal/service"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Unique constraint names; each maps to a domain conflict.
const (
	constraintReservationSlot = "reservations_slot_key"
	constraintCouponCode      = "coupons_code_key"
	constraintClaimPerUser    = "coupon_claims_user_coupon_key"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&PostgresRepository{DB: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// PostgresRepository implements every repository over a single querier,
// normally the *sql.Tx opened by Store.WithinTx.
type PostgresRepository struct {
	DB querier
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return service.ErrNotFound
	}
	return err
}

// conflict translates a unique violation on constraint into target.
func conflict(err error, constraint string, target error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation && pqErr.Constraint == constraint {
		return target
	}
	return err
}

var (
	_ service.Store = (*Store)(nil)
	_ service.Tx    = (*PostgresRepository)(nil)
)
