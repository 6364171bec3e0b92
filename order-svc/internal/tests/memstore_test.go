package tests

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"
)

// memState is one consistent copy of every table.
type memState struct {
	seq          int64
	venues       map[int64]domain.Venue
	foods        map[int64]domain.Food
	variants     map[int64]domain.Variant
	addresses    map[int64]domain.Address
	orders       map[int64]domain.Order
	coupons      map[int64]domain.Coupon
	claims       map[int64]domain.CouponClaim
	tables       map[int64]domain.Table
	reservations map[int64]domain.Reservation
	waitings     map[int64]domain.Waiting
	favorites    map[favoriteKey]domain.Favorite
}

type favoriteKey struct{ user, food int64 }

func (s *memState) clone() *memState {
	return &memState{
		seq:          s.seq,
		venues:       maps.Clone(s.venues),
		foods:        maps.Clone(s.foods),
		variants:     maps.Clone(s.variants),
		addresses:    maps.Clone(s.addresses),
		orders:       maps.Clone(s.orders),
		coupons:      maps.Clone(s.coupons),
		claims:       maps.Clone(s.claims),
		tables:       maps.Clone(s.tables),
		reservations: maps.Clone(s.reservations),
		waitings:     maps.Clone(s.waitings),
		favorites:    maps.Clone(s.favorites),
	}
}

// memStore runs each transaction against a private copy and swaps it in on
// success. Transactions are serialized, so unique checks behave like the
// database's constraints.
type memStore struct {
	mu    sync.Mutex
	state *memState
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			venues:       map[int64]domain.Venue{},
			foods:        map[int64]domain.Food{},
			variants:     map[int64]domain.Variant{},
			addresses:    map[int64]domain.Address{},
			orders:       map[int64]domain.Order{},
			coupons:      map[int64]domain.Coupon{},
			claims:       map[int64]domain.CouponClaim{},
			tables:       map[int64]domain.Table{},
			reservations: map[int64]domain.Reservation{},
			waitings:     map[int64]domain.Waiting{},
			favorites:    map[favoriteKey]domain.Favorite{},
		},
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: m, s: m.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.s
	return nil
}

// snapshot returns the committed state for assertions.
func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) seed(fn func(tx service.Tx) error) {
	if err := m.WithinTx(context.Background(), fn); err != nil {
		panic(err)
	}
}

type memTx struct {
	store *memStore
	s     *memState
}

func (t *memTx) nextID() int64 {
	t.s.seq++
	return t.s.seq
}

func (t *memTx) tick() time.Time {
	t.store.clock = t.store.clock.Add(time.Second)
	return t.store.clock
}

func (t *memTx) GetFood(_ context.Context, id int64) (*domain.Food, error) {
	f, ok := t.s.foods[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &f, nil
}

func (t *memTx) GetVariant(_ context.Context, id int64) (*domain.Variant, error) {
	v, ok := t.s.variants[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &v, nil
}

func (t *memTx) ListFoods(_ context.Context, filter domain.MenuFilter) ([]domain.Food, error) {
	foods := []domain.Food{}
	for _, f := range t.s.foods {
		if filter.VenueID > 0 && f.VenueID != filter.VenueID {
			continue
		}
		if filter.Category != "" && f.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.IsVeg != nil && f.IsVeg != *filter.IsVeg {
			continue
		}
		if filter.MinPrice != nil && f.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && f.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		foods = append(foods, f)
	}
	ordered := map[int64]int{}
	for _, o := range t.s.orders {
		ordered[o.FoodID] += o.Quantity
	}
	sort.Slice(foods, func(i, j int) bool {
		a, b := foods[i], foods[j]
		switch filter.Sort {
		case "price_asc":
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
		case "price_desc":
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
		case "name":
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case "popular":
			if ordered[a.ID] != ordered[b.ID] {
				return ordered[a.ID] > ordered[b.ID]
			}
		}
		return a.ID < b.ID
	})

	if filter.Offset >= len(foods) {
		return []domain.Food{}, nil
	}
	foods = foods[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(foods) {
		foods = foods[:filter.Limit]
	}
	return foods, nil
}

func (t *memTx) CreateFood(_ context.Context, food *domain.Food) error {
	food.ID = t.nextID()
	food.CreatedAt = t.tick()
	for i := range food.Variants {
		food.Variants[i].ID = t.nextID()
		food.Variants[i].FoodID = food.ID
		t.s.variants[food.Variants[i].ID] = food.Variants[i]
	}
	t.s.foods[food.ID] = *food
	return nil
}

func (t *memTx) CreateVenue(_ context.Context, venue *domain.Venue) error {
	venue.ID = t.nextID()
	venue.CreatedAt = t.tick()
	t.s.venues[venue.ID] = *venue
	return nil
}

func (t *memTx) ListVenues(_ context.Context) ([]domain.Venue, error) {
	venues := []domain.Venue{}
	for _, v := range t.s.venues {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues, nil
}

func (t *memTx) GetAddress(_ context.Context, id, ownerID int64) (*domain.Address, error) {
	a, ok := t.s.addresses[id]
	if !ok || a.UserID != ownerID {
		return nil, service.ErrNotFound
	}
	return &a, nil
}

func (t *memTx) ListAddresses(_ context.Context, userID int64) ([]domain.Address, error) {
	out := []domain.Address{}
	for _, a := range t.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) CreateAddress(_ context.Context, addr *domain.Address) error {
	addr.ID = t.nextID()
	addr.CreatedAt = t.tick()
	t.s.addresses[addr.ID] = *addr
	return nil
}

func (t *memTx) CreateOrder(_ context.Context, order *domain.Order) error {
	order.ID = t.nextID()
	order.CreatedAt = t.tick()
	order.UpdatedAt = order.CreatedAt
	t.s.orders[order.ID] = *order
	return nil
}

func (t *memTx) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := t.s.orders[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &o, nil
}

func (t *memTx) filterOrders(keep func(domain.Order) bool) []domain.Order {
	out := []domain.Order{}
	for _, o := range t.s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *memTx) ListOrdersByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	return t.filterOrders(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (t *memTx) ListOrdersByBatch(_ context.Context, batchID string) ([]domain.Order, error) {
	return t.filterOrders(func(o domain.Order) bool { return o.BatchID == batchID }), nil
}

func (t *memTx) ListOrdersByStatus(_ context.Context, status domain.OrderStatus, venueID int64) ([]domain.Order, error) {
	return t.filterOrders(func(o domain.Order) bool {
		return (status == "" || o.Status == status) && (venueID == 0 || o.VenueID == venueID)
	}), nil
}

// UpdateOrderStatus only touches status, mirroring the price freeze in the schema.
func (t *memTx) UpdateOrderStatus(_ context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error) {
	o, ok := t.s.orders[id]
	if !ok || o.Status != from {
		return nil, service.ErrNotFound
	}
	o.Status = to
	o.UpdatedAt = t.tick()
	t.s.orders[id] = o
	return &o, nil
}

func (t *memTx) GetActiveCoupon(_ context.Context, code string, now time.Time) (*domain.Coupon, error) {
	for _, c := range t.s.coupons {
		if c.Code == code && c.IsActive && !c.ValidUntil.Before(now) {
			return &c, nil
		}
	}
	return nil, service.ErrNotFound
}

func (t *memTx) CreateCoupon(_ context.Context, coupon *domain.Coupon) error {
	for _, c := range t.s.coupons {
		if c.Code == coupon.Code {
			return service.ErrDuplicateCoupon
		}
	}
	coupon.ID = t.nextID()
	coupon.CreatedAt = t.tick()
	t.s.coupons[coupon.ID] = *coupon
	return nil
}

func (t *memTx) ListActiveCoupons(_ context.Context, now time.Time) ([]domain.Coupon, error) {
	out := []domain.Coupon{}
	for _, c := range t.s.coupons {
		if c.IsActive && !c.ValidFrom.After(now) && !c.ValidUntil.Before(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) CreateClaim(_ context.Context, claim *domain.CouponClaim) error {
	for _, c := range t.s.claims {
		if c.UserID == claim.UserID && c.CouponID == claim.CouponID {
			return service.ErrAlreadyClaimed
		}
	}
	claim.ID = t.nextID()
	t.s.claims[claim.ID] = *claim
	return nil
}

func (t *memTx) ListClaims(_ context.Context, userID int64) ([]domain.CouponClaim, error) {
	out := []domain.CouponClaim{}
	for _, c := range t.s.claims {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) CreateTable(_ context.Context, table *domain.Table) error {
	table.ID = t.nextID()
	table.CreatedAt = t.tick()
	t.s.tables[table.ID] = *table
	return nil
}

func (t *memTx) ListTables(_ context.Context, venueID int64) ([]domain.Table, error) {
	out := []domain.Table{}
	for _, tb := range t.s.tables {
		if tb.VenueID == venueID {
			out = append(out, tb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) GetTable(_ context.Context, id int64) (*domain.Table, error) {
	tb, ok := t.s.tables[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &tb, nil
}

func (t *memTx) ReservedTableIDs(_ context.Context, venueID int64, slot int, date string) ([]int64, error) {
	var ids []int64
	for _, r := range t.s.reservations {
		if r.VenueID == venueID && r.Slot == slot && r.Date == date {
			ids = append(ids, r.TableID)
		}
	}
	return ids, nil
}

func (t *memTx) ReservationExists(_ context.Context, key domain.SlotKey) (bool, error) {
	for _, r := range t.s.reservations {
		if r.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	if exists, _ := t.ReservationExists(ctx, r.Key()); exists {
		return service.ErrSlotTaken
	}
	r.ID = t.nextID()
	r.CreatedAt = t.tick()
	t.s.reservations[r.ID] = *r
	return nil
}

func (t *memTx) GetReservation(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := t.s.reservations[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &r, nil
}

func (t *memTx) DeleteReservation(_ context.Context, id int64) (int64, error) {
	if _, ok := t.s.reservations[id]; !ok {
		return 0, nil
	}
	delete(t.s.reservations, id)
	return 1, nil
}

func (t *memTx) ListReservationsByUser(_ context.Context, userID int64) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	for _, r := range t.s.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateWaiting keeps a preset CreatedAt so tests can force ties.
func (t *memTx) CreateWaiting(_ context.Context, w *domain.Waiting) error {
	w.ID = t.nextID()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = t.tick()
	}
	t.s.waitings[w.ID] = *w
	return nil
}

func (t *memTx) NextWaiting(_ context.Context, key domain.SlotKey) (*domain.Waiting, error) {
	var next *domain.Waiting
	for _, w := range t.s.waitings {
		if w.Key() != key {
			continue
		}
		if next == nil || w.CreatedAt.Before(next.CreatedAt) || (w.CreatedAt.Equal(next.CreatedAt) && w.ID < next.ID) {
			cur := w
			next = &cur
		}
	}
	if next == nil {
		return nil, service.ErrNotFound
	}
	return next, nil
}

func (t *memTx) DeleteWaiting(_ context.Context, id int64) error {
	delete(t.s.waitings, id)
	return nil
}

func (t *memTx) ListWaitingsByUser(_ context.Context, userID int64) ([]domain.Waiting, error) {
	out := []domain.Waiting{}
	for _, w := range t.s.waitings {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ service.Tx = (*memTx)(nil)

func (t *memTx) AddFavorite(_ context.Context, fav *domain.Favorite) error {
	key := favoriteKey{fav.UserID, fav.FoodID}
	if existing, ok := t.s.favorites[key]; ok {
		*fav = existing
		return nil
	}
	fav.ID = t.nextID()
	fav.CreatedAt = t.tick()
	t.s.favorites[key] = *fav
	return nil
}

func (t *memTx) RemoveFavorite(_ context.Context, userID, foodID int64) (int64, error) {
	key := favoriteKey{userID, foodID}
	if _, ok := t.s.favorites[key]; !ok {
		return 0, nil
	}
	delete(t.s.favorites, key)
	return 1, nil
}

func (t *memTx) ListFavorites(_ context.Context, userID int64) ([]domain.Favorite, error) {
	favs := []domain.Favorite{}
	for _, f := range t.s.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].ID > favs[j].ID })
	return favs, nil
}
