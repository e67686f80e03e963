package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/money"
)

// CartRepository stores carts across two tables. Save replaces the whole
// aggregate in one transaction; the item rows are never patched in place.
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO carts (id, customer_id, status, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET status = $3, updated_at = $6`,
		c.ID(), c.CustomerID(), string(c.Status()), c.Currency(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID()); err != nil {
		return err
	}

	for i, item := range c.Items() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (id, cart_id, position, product_id, product_name, quantity, unit_price, discount, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID(), c.ID(), i, item.ProductID(), item.ProductName(), item.Quantity().Value(),
			item.UnitPrice().Amount().String(), item.Discount().Amount().String(),
			item.CreatedAt(), item.UpdatedAt(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	return r.findOne(ctx,
		`SELECT id, customer_id, status, currency, created_at, updated_at FROM carts WHERE id = $1`, id)
}

func (r *CartRepository) FindActiveByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	return r.findOne(ctx,
		`SELECT id, customer_id, status, currency, created_at, updated_at
		 FROM carts WHERE customer_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT 1`,
		customerID, string(cart.StatusActive))
}

func (r *CartRepository) FindAllByCustomerID(ctx context.Context, customerID string) ([]*cart.Cart, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, status, currency, created_at, updated_at
		 FROM carts WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []*cart.Cart
	for rows.Next() {
		c, err := r.scanCart(ctx, rows)
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, rows.Err()
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	return err
}

func (r *CartRepository) findOne(ctx context.Context, query string, args ...any) (*cart.Cart, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return r.scanCart(ctx, rows)
}

func (r *CartRepository) scanCart(ctx context.Context, rows *sql.Rows) (*cart.Cart, error) {
	var (
		id, customerID, status, currency string
		createdAt, updatedAt             time.Time
	)
	if err := rows.Scan(&id, &customerID, &status, &currency, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id, currency)
	if err != nil {
		return nil, err
	}
	return cart.Reconstitute(id, customerID, items, cart.Status(status), currency, createdAt, updatedAt), nil
}

func (r *CartRepository) loadItems(ctx context.Context, cartID, currency string) ([]*cart.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, product_name, quantity, unit_price, discount, created_at, updated_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY position`,
		cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*cart.Item
	for rows.Next() {
		var (
			id, productID, productName string
			quantity                   int
			unitPrice, discount        string
			createdAt, updatedAt       time.Time
		)
		if err := rows.Scan(&id, &productID, &productName, &quantity, &unitPrice, &discount, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		qty, err := domain.NewQuantity(quantity)
		if err != nil {
			return nil, err
		}
		price, err := parseAmount(unitPrice, currency)
		if err != nil {
			return nil, err
		}
		disc, err := parseAmount(discount, currency)
		if err != nil {
			return nil, err
		}

		items = append(items, cart.ReconstituteItem(id, productID, productName, qty, price, disc, createdAt, updatedAt))
	}
	return items, rows.Err()
}

func parseAmount(raw, currency string) (money.Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return money.Money{}, err
	}
	return money.Reconstitute(d, currency), nil
}
