package service

import (
	"context"

	"overcooked-ordering/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	TopToday(ctx context.Context, venueID int64, limit int) ([]domain.FoodAnalytics, error)
	TopAllTime(ctx context.Context, venueID int64, limit int) ([]domain.FoodAnalytics, error)
	Sales(ctx context.Context, venueID int64, days int) ([]domain.DailySales, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
