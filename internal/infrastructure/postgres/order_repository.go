package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/order"
)

// OrderRepository stores orders and their immutable lines. Lines are written
// once on first save; later saves only move the order row forward.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	addr := o.ShippingAddress()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, status, currency, tracking_number,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET status = $3, tracking_number = $5, updated_at = $12`,
		o.ID(), o.CustomerID(), string(o.Status()), o.Currency(), o.TrackingNumber(),
		addr.Street(), addr.City(), addr.State(), addr.ZipCode(), addr.Country(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	for i, line := range o.Lines() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines (id, order_id, position, product_id, product_name, quantity, unit_price, discount, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			line.ID(), o.ID(), i, line.ProductID(), line.ProductName(), line.Quantity().Value(),
			line.UnitPrice().Amount().String(), line.Discount().Amount().String(), line.CreatedAt(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, status, currency, tracking_number,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at, updated_at
		 FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return r.scanOrder(ctx, rows)
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, status, currency, tracking_number,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at, updated_at
		 FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := r.scanOrder(ctx, rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return err
}

func (r *OrderRepository) scanOrder(ctx context.Context, rows *sql.Rows) (*order.Order, error) {
	var (
		id, customerID, status, currency, trackingNumber string
		street, city, state, zip, country                string
		createdAt, updatedAt                             time.Time
	)
	if err := rows.Scan(&id, &customerID, &status, &currency, &trackingNumber,
		&street, &city, &state, &zip, &country, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	addr, err := order.NewShippingAddress(street, city, state, zip, country)
	if err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, id, currency)
	if err != nil {
		return nil, err
	}

	return order.Reconstitute(id, customerID, lines, addr, order.Status(status), currency, trackingNumber, createdAt, updatedAt), nil
}

func (r *OrderRepository) loadLines(ctx context.Context, orderID, currency string) ([]*order.Line, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, product_name, quantity, unit_price, discount, created_at
		 FROM order_lines WHERE order_id = $1 ORDER BY position`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*order.Line
	for rows.Next() {
		var (
			id, productID, productName string
			quantity                   int
			unitPrice, discount        string
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &productID, &productName, &quantity, &unitPrice, &discount, &createdAt); err != nil {
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

		lines = append(lines, order.ReconstituteLine(id, productID, productName, qty, price, disc, createdAt))
	}
	return lines, rows.Err()
}
