package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/example/ec-shop/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, sku, price, currency, category_name, category_slug,
	stock_quantity, is_active, image_urls, metadata, created_at, updated_at`

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	metadata, err := json.Marshal(p.Metadata())
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO UPDATE SET
			name = $2, description = $3, price = $5, category_name = $7, category_slug = $8,
			stock_quantity = $9, is_active = $10, image_urls = $11, metadata = $12, updated_at = $14`,
		p.ID(), p.Name(), p.Description(), p.Sku().Value(),
		p.Price().Amount().String(), p.Price().Currency(),
		p.Category().Name(), p.Category().Slug(),
		p.StockQuantity(), p.IsActive(), pq.Array(p.ImageURLs()), metadata,
		p.CreatedAt(), p.UpdatedAt(),
	)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) FindBySku(ctx context.Context, sku string) (*product.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = UPPER(TRIM($1))`, sku)
}

func (r *ProductRepository) FindAll(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	return r.findMany(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, slug string) ([]*product.Product, error) {
	return r.findMany(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_slug = $1 ORDER BY created_at DESC`,
		slug)
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]*product.Product, error) {
	return r.findMany(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC`,
		query)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *ProductRepository) findOne(ctx context.Context, query string, args ...any) (*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanProduct(rows)
}

func (r *ProductRepository) findMany(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(rows *sql.Rows) (*product.Product, error) {
	var (
		id, name, description, skuRaw      string
		price, currency                    string
		categoryName, categorySlug         string
		stockQuantity                      int
		isActive                           bool
		imageURLs                          pq.StringArray
		metadataRaw                        []byte
		createdAt, updatedAt               time.Time
	)
	if err := rows.Scan(&id, &name, &description, &skuRaw, &price, &currency,
		&categoryName, &categorySlug, &stockQuantity, &isActive, &imageURLs, &metadataRaw,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sku, err := product.NewSku(skuRaw)
	if err != nil {
		return nil, err
	}
	category, err := product.NewCategory(categoryName, categorySlug)
	if err != nil {
		return nil, err
	}
	priceMoney, err := parseAmount(price, currency)
	if err != nil {
		return nil, err
	}

	var metadata map[string]any
	if err := json.Unmarshal(metadataRaw, &metadata); err != nil {
		return nil, err
	}

	return product.Reconstitute(id, name, description, sku, priceMoney, category,
		stockQuantity, isActive, imageURLs, metadata, createdAt, updatedAt), nil
}
