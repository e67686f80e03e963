package product

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

// Product is a catalog entry. It is its own aggregate: stock level and
// activation are independent axes, and availability requires both. The price
// currency is fixed at creation.
type Product struct {
	id            string
	name          string
	description   string
	sku           Sku
	price         money.Money
	category      Category
	stockQuantity int
	isActive      bool
	imageURLs     []string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time
}

// New creates an active product with the given starting stock.
func New(name, description, sku string, price money.Money, category Category, stockQuantity int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("product name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("product description is required")
	}
	if stockQuantity < 0 {
		return nil, domain.NewValidationError("stock quantity cannot be negative")
	}

	skuVO, err := NewSku(sku)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Product{
		id:            uuid.New().String(),
		name:          strings.TrimSpace(name),
		description:   strings.TrimSpace(description),
		sku:           skuVO,
		price:         price,
		category:      category,
		stockQuantity: stockQuantity,
		isActive:      true,
		imageURLs:     []string{},
		metadata:      map[string]any{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstitute rebuilds a product from persistence.
func Reconstitute(id, name, description string, sku Sku, price money.Money, category Category, stockQuantity int, isActive bool, imageURLs []string, metadata map[string]any, createdAt, updatedAt time.Time) *Product {
	if imageURLs == nil {
		imageURLs = []string{}
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Product{
		id:            id,
		name:          name,
		description:   description,
		sku:           sku,
		price:         price,
		category:      category,
		stockQuantity: stockQuantity,
		isActive:      isActive,
		imageURLs:     imageURLs,
		metadata:      metadata,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Sku() Sku             { return p.sku }
func (p *Product) Price() money.Money   { return p.price }
func (p *Product) Category() Category   { return p.category }
func (p *Product) StockQuantity() int   { return p.stockQuantity }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) ImageURLs() []string {
	out := make([]string, len(p.imageURLs))
	copy(out, p.imageURLs)
	return out
}

func (p *Product) Metadata() map[string]any {
	out := make(map[string]any, len(p.metadata))
	for k, v := range p.metadata {
		out[k] = v
	}
	return out
}

// UpdatePrice rejects currency changes; the price currency is fixed at creation.
func (p *Product) UpdatePrice(newPrice money.Money) error {
	if newPrice.Currency() != p.price.Currency() {
		return domain.NewValidationError("cannot change product currency from %s to %s",
			p.price.Currency(), newPrice.Currency())
	}
	p.price = newPrice
	p.touch()
	return nil
}

func (p *Product) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("product name cannot be empty")
	}
	p.name = strings.TrimSpace(name)
	p.touch()
	return nil
}

func (p *Product) UpdateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return domain.NewValidationError("product description cannot be empty")
	}
	p.description = strings.TrimSpace(description)
	p.touch()
	return nil
}

func (p *Product) UpdateCategory(category Category) {
	p.category = category
	p.touch()
}

// IncreaseStock adds to the stock level; the delta must be positive.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("stock increase must be positive, got %d", quantity)
	}
	p.stockQuantity += quantity
	p.touch()
	return nil
}

// DecreaseStock removes from the stock level; the delta must be positive and
// may not exceed the current stock.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("stock decrease must be positive, got %d", quantity)
	}
	if p.stockQuantity < quantity {
		return domain.NewValidationError("insufficient stock: have %d, requested %d", p.stockQuantity, quantity)
	}
	p.stockQuantity -= quantity
	p.touch()
	return nil
}

func (p *Product) AddImage(url string) error {
	if strings.TrimSpace(url) == "" {
		return domain.NewValidationError("image url cannot be empty")
	}
	p.imageURLs = append(p.imageURLs, strings.TrimSpace(url))
	p.touch()
	return nil
}

func (p *Product) RemoveImage(url string) {
	for i, u := range p.imageURLs {
		if u == url {
			p.imageURLs = append(p.imageURLs[:i], p.imageURLs[i+1:]...)
			p.touch()
			return
		}
	}
}

func (p *Product) Activate() {
	p.isActive = true
	p.touch()
}

func (p *Product) Deactivate() {
	p.isActive = false
	p.touch()
}

func (p *Product) SetMetadata(key string, value any) {
	p.metadata[key] = value
	p.touch()
}

func (p *Product) IsInStock() bool {
	return p.stockQuantity > 0
}

// IsAvailable requires the product to be both active and in stock.
func (p *Product) IsAvailable() bool {
	return p.isActive && p.IsInStock()
}

// Equals compares by identity.
func (p *Product) Equals(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id == other.id
}

func (p *Product) touch() {
	p.updatedAt = time.Now()
}
