package storage

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS foods (
		id BIGSERIAL PRIMARY KEY,
		venue_id BIGINT NOT NULL REFERENCES venues(id),
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		is_veg BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS food_variants (
		id BIGSERIAL PRIMARY KEY,
		food_id BIGINT NOT NULL REFERENCES foods(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		line1 TEXT NOT NULL,
		city TEXT NOT NULL,
		postal_code TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		batch_id UUID NOT NULL,
		venue_id BIGINT NOT NULL,
		food_id BIGINT NOT NULL,
		variant_id BIGINT,
		user_id BIGINT NOT NULL,
		address_id BIGINT,
		quantity INT NOT NULL CHECK (quantity >= 1),
		price_at_order NUMERIC(10,2) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'created',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_batch_idx ON orders (batch_id)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status, venue_id)`,
	// price_at_order is a snapshot; reject any later rewrite.
	`CREATE OR REPLACE FUNCTION orders_freeze_price() RETURNS trigger AS $$
	BEGIN
		IF NEW.price_at_order IS DISTINCT FROM OLD.price_at_order THEN
			RAISE EXCEPTION 'price_at_order is immutable';
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS orders_freeze_price ON orders`,
	`CREATE TRIGGER orders_freeze_price BEFORE UPDATE ON orders
		FOR EACH ROW EXECUTE FUNCTION orders_freeze_price()`,
	`CREATE TABLE IF NOT EXISTS coupons (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL,
		discount_type VARCHAR(16) NOT NULL CHECK (discount_type IN ('percentage', 'flat')),
		discount_value NUMERIC(10,2) NOT NULL,
		min_order_value NUMERIC(10,2) NOT NULL DEFAULT 0,
		max_discount_amount NUMERIC(10,2),
		valid_from TIMESTAMPTZ NOT NULL DEFAULT now(),
		valid_until TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT coupons_code_key UNIQUE (code)
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		food_id BIGINT NOT NULL REFERENCES foods(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT favorites_user_food_key UNIQUE (user_id, food_id)
	)`,
	`CREATE TABLE IF NOT EXISTS coupon_claims (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		coupon_id BIGINT NOT NULL REFERENCES coupons(id),
		claimed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT coupon_claims_user_coupon_key UNIQUE (user_id, coupon_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tables (
		id BIGSERIAL PRIMARY KEY,
		venue_id BIGINT NOT NULL REFERENCES venues(id),
		name INT NOT NULL,
		seat INT NOT NULL CHECK (seat >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		venue_id BIGINT NOT NULL,
		table_id BIGINT NOT NULL REFERENCES tables(id),
		user_id BIGINT NOT NULL,
		slot INT NOT NULL,
		r_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT reservations_slot_key UNIQUE (table_id, slot, r_date)
	)`,
	`CREATE TABLE IF NOT EXISTS waitings (
		id BIGSERIAL PRIMARY KEY,
		venue_id BIGINT NOT NULL,
		table_id BIGINT NOT NULL REFERENCES tables(id),
		user_id BIGINT NOT NULL,
		slot INT NOT NULL,
		r_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE INDEX IF NOT EXISTS waitings_queue_idx ON waitings (table_id, slot, r_date, created_at, id)`,
}

// EnsureSchema creates the order-svc tables and constraints when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// EnsureDefaultVenue makes sure the configured default venue row exists.
func EnsureDefaultVenue(ctx context.Context, db *sql.DB, venueID int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO venues (id, name) VALUES ($1, 'Default venue')
		ON CONFLICT (id) DO NOTHING`, venueID)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('venues', 'id'), GREATEST((SELECT MAX(id) FROM venues), 1))`)
	return err
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
