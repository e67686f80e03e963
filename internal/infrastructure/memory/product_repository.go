package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/ec-shop/internal/domain/money"
	"github.com/example/ec-shop/internal/domain/product"
)

type productRecord struct {
	id            string
	name          string
	description   string
	sku           product.Sku
	price         money.Money
	category      product.Category
	stockQuantity int
	isActive      bool
	imageURLs     []string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time
}

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]productRecord
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]productRecord)}
}

func (r *ProductRepository) Save(_ context.Context, p *product.Product) error {
	rec := productRecord{
		id:            p.ID(),
		name:          p.Name(),
		description:   p.Description(),
		sku:           p.Sku(),
		price:         p.Price(),
		category:      p.Category(),
		stockQuantity: p.StockQuantity(),
		isActive:      p.IsActive(),
		imageURLs:     p.ImageURLs(),
		metadata:      p.Metadata(),
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}

	r.mu.Lock()
	r.products[rec.id] = rec
	r.mu.Unlock()
	return nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	rec, ok := r.products[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return restoreProduct(rec), nil
}

func (r *ProductRepository) FindBySku(_ context.Context, sku string) (*product.Product, error) {
	normalized := strings.ToUpper(strings.TrimSpace(sku))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.products {
		if rec.sku.Value() == normalized {
			return restoreProduct(rec), nil
		}
	}
	return nil, nil
}

// FindAll pages through products ordered by creation time, newest first.
func (r *ProductRepository) FindAll(_ context.Context, limit, offset int) ([]*product.Product, error) {
	r.mu.RLock()
	recs := make([]productRecord, 0, len(r.products))
	for _, rec := range r.products {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].createdAt.After(recs[j].createdAt)
	})

	if offset >= len(recs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(recs) {
		end = len(recs)
	}

	out := make([]*product.Product, 0, end-offset)
	for _, rec := range recs[offset:end] {
		out = append(out, restoreProduct(rec))
	}
	return out, nil
}

func (r *ProductRepository) FindByCategory(_ context.Context, slug string) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*product.Product
	for _, rec := range r.products {
		if rec.category.Slug() == slug {
			out = append(out, restoreProduct(rec))
		}
	}
	return out, nil
}

// Search matches the query case-insensitively against names and descriptions.
func (r *ProductRepository) Search(_ context.Context, query string) ([]*product.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*product.Product
	for _, rec := range r.products {
		if strings.Contains(strings.ToLower(rec.name), q) ||
			strings.Contains(strings.ToLower(rec.description), q) {
			out = append(out, restoreProduct(rec))
		}
	}
	return out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.products, id)
	r.mu.Unlock()
	return nil
}

func restoreProduct(rec productRecord) *product.Product {
	return product.Reconstitute(
		rec.id, rec.name, rec.description, rec.sku, rec.price, rec.category,
		rec.stockQuantity, rec.isActive, rec.imageURLs, rec.metadata, rec.createdAt, rec.updatedAt)
}
