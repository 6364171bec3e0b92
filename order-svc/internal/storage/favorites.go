package storage

import (
	"context"
	"database/sql"
	"errors"

	"overcooked-ordering/order-svc/internal/domain"
)

func (r *PostgresRepository) AddFavorite(ctx context.Context, fav *domain.Favorite) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO favorites (user_id, food_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT favorites_user_food_key DO NOTHING
		RETURNING id, created_at`, fav.UserID, fav.FoodID).
		Scan(&fav.ID, &fav.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, foodID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM favorites WHERE user_id = $1 AND food_id = $2", userID, foodID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, food_id, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []domain.Favorite{}
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.FoodID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}
