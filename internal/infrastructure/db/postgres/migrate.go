package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema. Statements are idempotent so startup can run
// them unconditionally. The FK on purchases uses ON DELETE RESTRICT: the
// referential guard on product removal holds even against callers that bypass
// the service layer.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS persons (
			person_id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			salt TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('ADMIN','USER')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL CHECK (price > 0),
			quantity INT NOT NULL CHECK (quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS purchases (
			transaction_id BIGSERIAL PRIMARY KEY,
			person_id BIGINT NOT NULL REFERENCES persons(person_id),
			product_id TEXT NOT NULL REFERENCES products(product_id) ON DELETE RESTRICT,
			quantity INT NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(12,2) NOT NULL,
			purchased_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_person_id ON purchases(person_id);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_product_id ON purchases(product_id);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_purchased_at ON purchases(purchased_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
