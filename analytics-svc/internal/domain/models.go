package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FoodAnalytics struct {
	FoodID   int64   `json:"food_id"`
	FoodName string  `json:"food_name"`
	VenueID  int64   `json:"venue_id"`
	Score    float64 `json:"score"`
}

type DailySales struct {
	VenueID int64           `json:"venue_id"`
	Day     time.Time       `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

const (
	DefaultTopLimit  = 10
	MaxTopLimit      = 50
	DefaultSalesDays = 7
	MaxSalesDays     = 90
)
