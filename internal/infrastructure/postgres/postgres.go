package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Connect opens a pooled connection to PostgreSQL and verifies it.
func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the tables the repositories need if they are missing.
// Amounts are stored as NUMERIC to keep them exact.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS carts (
			id UUID PRIMARY KEY,
			customer_id TEXT NOT NULL,
			status TEXT NOT NULL,
			currency CHAR(3) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_carts_customer ON carts (customer_id, status)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			cart_id UUID NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
			position INT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(19,4) NOT NULL,
			discount NUMERIC(19,4) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id TEXT NOT NULL,
			status TEXT NOT NULL,
			currency CHAR(3) NOT NULL,
			tracking_number TEXT NOT NULL DEFAULT '',
			ship_street TEXT NOT NULL,
			ship_city TEXT NOT NULL,
			ship_state TEXT NOT NULL,
			ship_zip TEXT NOT NULL,
			ship_country TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
			position INT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(19,4) NOT NULL,
			discount NUMERIC(19,4) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			sku TEXT NOT NULL UNIQUE,
			price NUMERIC(19,4) NOT NULL,
			currency CHAR(3) NOT NULL,
			category_name TEXT NOT NULL,
			category_slug TEXT NOT NULL,
			stock_quantity INT NOT NULL,
			is_active BOOLEAN NOT NULL,
			image_urls TEXT[] NOT NULL DEFAULT '{}',
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_slug)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			roles TEXT[] NOT NULL,
			is_active BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
