package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		email         text PRIMARY KEY,
		name          text NOT NULL DEFAULT '',
		password_hash bytea NOT NULL,
		role          text NOT NULL DEFAULT 'user',
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                    text PRIMARY KEY,
		user_email            text NOT NULL,
		status                text NOT NULL,
		total_cents           integer NOT NULL,
		delivery_name         text NOT NULL DEFAULT '',
		delivery_phone        text NOT NULL DEFAULT '',
		delivery_address      text NOT NULL DEFAULT '',
		delivery_instructions text NOT NULL DEFAULT '',
		created_at            timestamptz NOT NULL DEFAULT now(),
		updated_at            timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_email_idx ON orders(user_email, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id          bigserial PRIMARY KEY,
		order_id    text NOT NULL REFERENCES orders(id),
		dish_id     text NOT NULL,
		name        text NOT NULL,
		qty         integer NOT NULL,
		price_cents integer NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_status_log (
		id         bigserial PRIMARY KEY,
		order_id   text NOT NULL,
		old_status text NOT NULL DEFAULT '',
		new_status text NOT NULL,
		changed_by text NOT NULL DEFAULT '',
		changed_at timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu (
		id          text PRIMARY KEY,
		name        text NOT NULL,
		description text NOT NULL DEFAULT '',
		image       text NOT NULL DEFAULT '',
		price_cents integer NOT NULL,
		category    text NOT NULL DEFAULT 'Miscellaneous',
		tags        text[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		dish_id    text NOT NULL,
		user_email text NOT NULL,
		stars      integer NOT NULL,
		comment    text NOT NULL DEFAULT '',
		updated_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (dish_id, user_email)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		provider_order_id text PRIMARY KEY,
		payment_id        text NOT NULL DEFAULT '',
		amount_cents      integer NOT NULL DEFAULT 0,
		status            text NOT NULL,
		webhook_verified  boolean NOT NULL DEFAULT false,
		error_description text NOT NULL DEFAULT '',
		captured_at       timestamptz,
		failed_at         timestamptz
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         bigserial PRIMARY KEY,
		first_name text NOT NULL,
		last_name  text NOT NULL,
		table_no   integer NOT NULL,
		phone      text NOT NULL,
		date       text NOT NULL,
		time       text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (table_no, date, time)
	)`,
}

// Migrate creates the schema idempotently, so a fresh environment needs
// nothing beyond a reachable database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
