package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"overcooked-ordering/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type PricedItem struct {
	Food      *domain.Food
	Variant   *domain.Variant
	UnitPrice decimal.Decimal
	VenueID   int64
}

// CatalogGateway resolves cart references to current prices. It keeps no
// state; every call reads through the repository it is given.
type CatalogGateway struct{}

func NewCatalogGateway() *CatalogGateway {
	return &CatalogGateway{}
}

// ResolvePrice returns the unit price for foodID, overridden by the variant's
// price when variantID is set. ErrFoodNotFound covers a missing food as well
// as a variant that belongs to another food.
func (g *CatalogGateway) ResolvePrice(ctx context.Context, repo CatalogRepository, foodID int64, variantID *int64) (*PricedItem, error) {
	food, err := repo.GetFood(ctx, foodID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrFoodNotFound, foodID)
		}
		return nil, err
	}

	item := &PricedItem{Food: food, UnitPrice: food.Price, VenueID: food.VenueID}
	if variantID == nil {
		return item, nil
	}

	variant, err := repo.GetVariant(ctx, *variantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: variant %d", ErrFoodNotFound, *variantID)
		}
		return nil, err
	}
	if variant.FoodID != food.ID {
		return nil, fmt.Errorf("%w: variant %d does not belong to food %d", ErrFoodNotFound, variant.ID, food.ID)
	}

	item.Variant = variant
	item.UnitPrice = variant.Price
	return item, nil
}

type CatalogService struct {
	store          Store
	defaultVenueID int64
}

func NewCatalogService(store Store, defaultVenueID int64) *CatalogService {
	return &CatalogService{store: store, defaultVenueID: defaultVenueID}
}

func (s *CatalogService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	var venues []domain.Venue
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		venues, err = tx.ListVenues(ctx)
		return err
	})
	return venues, err
}

func (s *CatalogService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	if strings.TrimSpace(venue.Name) == "" {
		return fmt.Errorf("%w: venue name is required", ErrInvalidInput)
	}
	return s.store.WithinTx(ctx, func(tx Tx) error {
		return tx.CreateVenue(ctx, venue)
	})
}

const (
	DefaultMenuLimit = 100
	MaxMenuLimit     = 500
)

// menuSortAliases maps the older sort names onto the canonical ones. There
// is no rating column, so "rating" ranks by quantity ordered.
var menuSortAliases = map[string]string{
	"price_low":  "price_asc",
	"price_high": "price_desc",
	"rating":     "popular",
}

func (s *CatalogService) ListMenu(ctx context.Context, filter domain.MenuFilter) ([]domain.Food, error) {
	if canonical, ok := menuSortAliases[filter.Sort]; ok {
		filter.Sort = canonical
	}
	switch filter.Sort {
	case "", "price_asc", "price_desc", "name", "popular":
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, filter.Sort)
	}

	switch {
	case filter.Limit < 0 || filter.Offset < 0:
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	case filter.Limit == 0:
		filter.Limit = DefaultMenuLimit
	case filter.Limit > MaxMenuLimit:
		filter.Limit = MaxMenuLimit
	}

	var foods []domain.Food
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		foods, err = tx.ListFoods(ctx, filter)
		return err
	})
	return foods, err
}

func (s *CatalogService) CreateFood(ctx context.Context, food *domain.Food) error {
	if strings.TrimSpace(food.Name) == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if food.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	for _, v := range food.Variants {
		if v.Price.IsNegative() {
			return fmt.Errorf("%w: variant %q price must not be negative", ErrInvalidInput, v.Name)
		}
	}
	if food.VenueID == 0 {
		food.VenueID = s.defaultVenueID
	}
	return s.store.WithinTx(ctx, func(tx Tx) error {
		return tx.CreateFood(ctx, food)
	})
}

// ToggleFavorite adds the food to the user's favorites, or removes it when it
// is already there.
func (s *CatalogService) ToggleFavorite(ctx context.Context, userID, foodID int64) (*domain.FavoriteToggle, error) {
	toggle := &domain.FavoriteToggle{FoodID: foodID}
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		if _, err := tx.GetFood(ctx, foodID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: %d", ErrFoodNotFound, foodID)
			}
			return err
		}

		removed, err := tx.RemoveFavorite(ctx, userID, foodID)
		if err != nil {
			return err
		}
		if removed > 0 {
			toggle.Status = domain.FavoriteRemoved
			return nil
		}
		toggle.Status = domain.FavoriteAdded
		return tx.AddFavorite(ctx, &domain.Favorite{UserID: userID, FoodID: foodID})
	})
	if err != nil {
		return nil, err
	}
	return toggle, nil
}

func (s *CatalogService) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var favs []domain.Favorite
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		favs, err = tx.ListFavorites(ctx, userID)
		return err
	})
	return favs, err
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
