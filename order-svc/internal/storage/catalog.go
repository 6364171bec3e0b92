package storage

import (
	"context"
	"fmt"
	"strings"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/lib/pq"
)

func (r *PostgresRepository) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	var f domain.Food
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, venue_id, name, category, description, price, is_veg, created_at
		FROM foods
		WHERE id = $1`, id).
		Scan(&f.ID, &f.VenueID, &f.Name, &f.Category, &f.Description, &f.Price, &f.IsVeg, &f.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *PostgresRepository) GetVariant(ctx context.Context, id int64) (*domain.Variant, error) {
	var v domain.Variant
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, food_id, name, price FROM food_variants WHERE id = $1", id).
		Scan(&v.ID, &v.FoodID, &v.Name, &v.Price)
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *PostgresRepository) ListFoods(ctx context.Context, filter domain.MenuFilter) ([]domain.Food, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VenueID > 0 {
		conds = append(conds, "venue_id = "+arg(filter.VenueID))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if filter.Category != "" {
		conds = append(conds, "category = "+arg(filter.Category))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}
	if filter.IsVeg != nil {
		conds = append(conds, "is_veg = "+arg(*filter.IsVeg))
	}

	query := "SELECT id, venue_id, name, category, description, price, is_veg, created_at FROM foods"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + menuOrder(filter.Sort)
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := []domain.Food{}
	index := map[int64]int{}
	var ids []int64
	for rows.Next() {
		var f domain.Food
		if err := rows.Scan(&f.ID, &f.VenueID, &f.Name, &f.Category, &f.Description, &f.Price, &f.IsVeg, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Variants = []domain.Variant{}
		index[f.ID] = len(foods)
		ids = append(ids, f.ID)
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return foods, nil
	}

	vrows, err := r.DB.QueryContext(ctx, `
		SELECT id, food_id, name, price
		FROM food_variants
		WHERE food_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	for vrows.Next() {
		var v domain.Variant
		if err := vrows.Scan(&v.ID, &v.FoodID, &v.Name, &v.Price); err != nil {
			return nil, err
		}
		if i, ok := index[v.FoodID]; ok {
			foods[i].Variants = append(foods[i].Variants, v)
		}
	}
	return foods, vrows.Err()
}

func menuOrder(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, id"
	case "price_desc":
		return "price DESC, id"
	case "name":
		return "name ASC, id"
	case "popular":
		return "(SELECT COALESCE(SUM(o.quantity), 0) FROM orders o WHERE o.food_id = foods.id) DESC, id"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *PostgresRepository) CreateFood(ctx context.Context, food *domain.Food) error {
	if err := r.DB.QueryRowContext(ctx, `
		INSERT INTO foods (venue_id, name, category, description, price, is_veg)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		food.VenueID, food.Name, food.Category, food.Description, food.Price, food.IsVeg).
		Scan(&food.ID, &food.CreatedAt); err != nil {
		return err
	}

	for i := range food.Variants {
		v := &food.Variants[i]
		v.FoodID = food.ID
		if err := r.DB.QueryRowContext(ctx,
			"INSERT INTO food_variants (food_id, name, price) VALUES ($1, $2, $3) RETURNING id",
			v.FoodID, v.Name, v.Price).Scan(&v.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO venues (name, address) VALUES ($1, $2) RETURNING id, created_at",
		venue.Name, venue.Address).Scan(&venue.ID, &venue.CreatedAt)
}

func (r *PostgresRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, address, created_at FROM venues ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.CreatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *PostgresRepository) GetAddress(ctx context.Context, id, ownerID int64) (*domain.Address, error) {
	var a domain.Address
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, label, line1, city, postal_code, created_at
		FROM addresses
		WHERE id = $1 AND user_id = $2`, id, ownerID).
		Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.City, &a.PostalCode, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PostgresRepository) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, label, line1, city, postal_code, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addrs := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.City, &a.PostalCode, &a.CreatedAt); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *PostgresRepository) CreateAddress(ctx context.Context, addr *domain.Address) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO addresses (user_id, label, line1, city, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		addr.UserID, addr.Label, addr.Line1, addr.City, addr.PostalCode).
		Scan(&addr.ID, &addr.CreatedAt)
}
