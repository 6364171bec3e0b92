package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"overcooked-ordering/analytics-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "analytics-svc").Logger()

const dayLayout = "2006-01-02"

type AnalyticsService struct {
	db  *sql.DB
	rdb *redis.Client
	now func() time.Time
}

func NewAnalyticsService(db *sql.DB, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		db:  db,
		rdb: rdb,
		now: time.Now,
	}
}

// WithClock replaces the clock used to pick the current sales day.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *AnalyticsService) TopToday(ctx context.Context, venueID int64, limit int) ([]domain.FoodAnalytics, error) {
	today := s.today()
	key := fmt.Sprintf("analytics:daily:%s:%d", today.Format(dayLayout), venueID)

	top, err := s.topFromRedis(ctx, key, venueID, limit)
	if err != nil || len(top) == 0 {
		return s.topFromOrders(ctx, venueID, limit, &today)
	}
	return top, nil
}

func (s *AnalyticsService) TopAllTime(ctx context.Context, venueID int64, limit int) ([]domain.FoodAnalytics, error) {
	key := fmt.Sprintf("analytics:alltime:%d", venueID)

	top, err := s.topFromRedis(ctx, key, venueID, limit)
	if err != nil || len(top) == 0 {
		return s.topFromOrders(ctx, venueID, limit, nil)
	}
	return top, nil
}

func (s *AnalyticsService) topFromRedis(ctx context.Context, key string, venueID int64, limit int) ([]domain.FoodAnalytics, error) {
	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Redis leaderboard unavailable")
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(results))
	for _, member := range results {
		id, err := strconv.ParseInt(fmt.Sprint(member.Member), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	names, err := s.foodNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	top := make([]domain.FoodAnalytics, 0, len(results))
	for _, member := range results {
		id, err := strconv.ParseInt(fmt.Sprint(member.Member), 10, 64)
		if err != nil {
			continue
		}
		name, ok := names[id]
		if !ok {
			continue
		}
		top = append(top, domain.FoodAnalytics{
			FoodID:   id,
			FoodName: name,
			VenueID:  venueID,
			Score:    member.Score,
		})
	}
	return top, nil
}

func (s *AnalyticsService) foodNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM foods WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// topFromOrders ranks foods by ordered quantity straight from the orders
// table. A nil since ranks over all time.
func (s *AnalyticsService) topFromOrders(ctx context.Context, venueID int64, limit int, since *time.Time) ([]domain.FoodAnalytics, error) {
	var from any
	if since != nil {
		from = *since
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.name, o.venue_id, SUM(o.quantity) AS score
		FROM orders o
		JOIN foods f ON f.id = o.food_id
		WHERE o.venue_id = $1
		  AND o.status <> 'cancelled'
		  AND ($2::timestamptz IS NULL OR o.created_at >= $2::timestamptz)
		GROUP BY f.id, f.name, o.venue_id
		ORDER BY score DESC, f.id
		LIMIT $3`, venueID, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []domain.FoodAnalytics{}
	for rows.Next() {
		var item domain.FoodAnalytics
		if err := rows.Scan(&item.FoodID, &item.FoodName, &item.VenueID, &item.Score); err != nil {
			return nil, err
		}
		top = append(top, item)
	}
	return top, rows.Err()
}

// Sales returns the venue's daily totals for the last days days, newest first.
func (s *AnalyticsService) Sales(ctx context.Context, venueID int64, days int) ([]domain.DailySales, error) {
	since := s.today().AddDate(0, 0, -(days - 1))

	rows, err := s.db.QueryContext(ctx, `
		SELECT venue_id, day, orders, revenue
		FROM venue_daily_sales
		WHERE venue_id = $1 AND day >= $2
		ORDER BY day DESC`, venueID, since.Format(dayLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.DailySales{}
	for rows.Next() {
		var row domain.DailySales
		if err := rows.Scan(&row.VenueID, &row.Day, &row.Orders, &row.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, row)
	}
	return sales, rows.Err()
}
