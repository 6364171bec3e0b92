package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

func DailyKey(day time.Time, venueID int64) string {
	return fmt.Sprintf("analytics:daily:%s:%d", day.Format(dayLayout), venueID)
}

func AllTimeKey(venueID int64) string {
	return fmt.Sprintf("analytics:alltime:%d", venueID)
}

type Store struct {
	db       *sql.DB
	rdb      *redis.Client
	dailyTTL time.Duration
}

func NewStore(db *sql.DB, rdb *redis.Client, dailyTTL time.Duration) *Store {
	return &Store{
		db:       db,
		rdb:      rdb,
		dailyTTL: dailyTTL,
	}
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS venue_daily_sales (
			venue_id BIGINT NOT NULL,
			day DATE NOT NULL,
			orders INTEGER NOT NULL DEFAULT 0,
			revenue NUMERIC(12, 2) NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (venue_id, day)
		)`)
	return err
}

func (s *Store) UpdateDailySales(ctx context.Context, venueID int64, day time.Time, revenue decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO venue_daily_sales (venue_id, day, orders, revenue)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (venue_id, day) DO UPDATE
		SET orders = venue_daily_sales.orders + 1,
			revenue = venue_daily_sales.revenue + EXCLUDED.revenue,
			updated_at = now()`,
		venueID, day.Format(dayLayout), revenue)
	return err
}

// UpdateAnalytics bumps the food's popularity in the daily and all-time
// leaderboards by the ordered quantity.
func (s *Store) UpdateAnalytics(ctx context.Context, venueID, foodID int64, quantity int, day time.Time) error {
	member := strconv.FormatInt(foodID, 10)
	dailyKey := DailyKey(day, venueID)

	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, dailyKey, float64(quantity), member)
	pipe.Expire(ctx, dailyKey, s.dailyTTL)
	pipe.ZIncrBy(ctx, AllTimeKey(venueID), float64(quantity), member)
	_, err := pipe.Exec(ctx)
	return err
}
