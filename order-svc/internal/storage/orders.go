package storage

import (
	"context"
	"database/sql"

	"overcooked-ordering/order-svc/internal/domain"
)

const orderColumns = `id, batch_id, venue_id, food_id, variant_id, user_id, address_id,
	quantity, price_at_order, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.BatchID, &o.VenueID, &o.FoodID, &o.VariantID, &o.UserID, &o.AddressID,
		&o.Quantity, &o.PriceAtOrder, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO orders (batch_id, venue_id, food_id, variant_id, user_id, address_id, quantity, price_at_order, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		order.BatchID, order.VenueID, order.FoodID, order.VariantID, order.UserID, order.AddressID,
		order.Quantity, order.PriceAtOrder, order.Status).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *PostgresRepository) ListOrdersByBatch(ctx context.Context, batchID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE batch_id::text = $1 ORDER BY id", batchID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *PostgresRepository) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, venueID int64) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR status = $1) AND ($2 = 0 OR venue_id = $2)
		ORDER BY created_at, id`, string(status), venueID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// UpdateOrderStatus only applies while the order still holds from, so two
// concurrent transitions cannot both win.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING `+orderColumns, to, id, from))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}
