package product

import "context"

// Repository persists products. A nil product with a nil error means absent.
type Repository interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySku(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]*Product, error)
	FindByCategory(ctx context.Context, categorySlug string) ([]*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
	Delete(ctx context.Context, id string) error
}
