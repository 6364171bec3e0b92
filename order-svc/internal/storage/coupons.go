package storage

import (
	"context"
	"time"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"
)

const couponColumns = `id, code, discount_type, discount_value, min_order_value, max_discount_amount,
	valid_from, valid_until, is_active, created_at`

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue, &c.MaxDiscountAmount,
		&c.ValidFrom, &c.ValidUntil, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) GetActiveCoupon(ctx context.Context, code string, now time.Time) (*domain.Coupon, error) {
	c, err := scanCoupon(r.DB.QueryRowContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE code = $1 AND is_active AND valid_until >= $2`, code, now))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *PostgresRepository) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO coupons (code, discount_type, discount_value, min_order_value, max_discount_amount, valid_from, valid_until, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MinOrderValue, coupon.MaxDiscountAmount,
		coupon.ValidFrom, coupon.ValidUntil, coupon.IsActive).
		Scan(&coupon.ID, &coupon.CreatedAt)
	return conflict(err, constraintCouponCode, service.ErrDuplicateCoupon)
}

func (r *PostgresRepository) ListActiveCoupons(ctx context.Context, now time.Time) ([]domain.Coupon, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE is_active AND valid_from <= $1 AND valid_until >= $1
		ORDER BY valid_until, id`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := []domain.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

func (r *PostgresRepository) CreateClaim(ctx context.Context, claim *domain.CouponClaim) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO coupon_claims (user_id, coupon_id, claimed_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		claim.UserID, claim.CouponID, claim.ClaimedAt).Scan(&claim.ID)
	return conflict(err, constraintClaimPerUser, service.ErrAlreadyClaimed)
}

func (r *PostgresRepository) ListClaims(ctx context.Context, userID int64) ([]domain.CouponClaim, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT cc.id, cc.user_id, cc.coupon_id, c.code, cc.claimed_at
		FROM coupon_claims cc
		JOIN coupons c ON c.id = cc.coupon_id
		WHERE cc.user_id = $1
		ORDER BY cc.claimed_at DESC, cc.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []domain.CouponClaim{}
	for rows.Next() {
		var c domain.CouponClaim
		if err := rows.Scan(&c.ID, &c.UserID, &c.CouponID, &c.Code, &c.ClaimedAt); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
