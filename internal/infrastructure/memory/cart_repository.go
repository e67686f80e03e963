package memory

import (
	"context"
	"sync"
	"time"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/money"
)

type cartItemRecord struct {
	id          string
	productID   string
	productName string
	quantity    domain.Quantity
	unitPrice   money.Money
	discount    money.Money
	createdAt   time.Time
	updatedAt   time.Time
}

type cartRecord struct {
	id         string
	customerID string
	items      []cartItemRecord
	status     cart.Status
	currency   string
	createdAt  time.Time
	updatedAt  time.Time
}

// CartRepository keeps carts in a map, detached from the aggregates handed
// out. Saving snapshots the aggregate; reads reconstitute a fresh one.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]cartRecord
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]cartRecord)}
}

func (r *CartRepository) Save(_ context.Context, c *cart.Cart) error {
	rec := cartRecord{
		id:         c.ID(),
		customerID: c.CustomerID(),
		status:     c.Status(),
		currency:   c.Currency(),
		createdAt:  c.CreatedAt(),
		updatedAt:  c.UpdatedAt(),
	}
	for _, item := range c.Items() {
		rec.items = append(rec.items, cartItemRecord{
			id:          item.ID(),
			productID:   item.ProductID(),
			productName: item.ProductName(),
			quantity:    item.Quantity(),
			unitPrice:   item.UnitPrice(),
			discount:    item.Discount(),
			createdAt:   item.CreatedAt(),
			updatedAt:   item.UpdatedAt(),
		})
	}

	r.mu.Lock()
	r.carts[rec.id] = rec
	r.mu.Unlock()
	return nil
}

func (r *CartRepository) FindByID(_ context.Context, id string) (*cart.Cart, error) {
	r.mu.RLock()
	rec, ok := r.carts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return restoreCart(rec), nil
}

func (r *CartRepository) FindActiveByCustomerID(_ context.Context, customerID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.carts {
		if rec.customerID == customerID && rec.status == cart.StatusActive {
			return restoreCart(rec), nil
		}
	}
	return nil, nil
}

func (r *CartRepository) FindAllByCustomerID(_ context.Context, customerID string) ([]*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*cart.Cart
	for _, rec := range r.carts {
		if rec.customerID == customerID {
			out = append(out, restoreCart(rec))
		}
	}
	return out, nil
}

func (r *CartRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
	return nil
}

func restoreCart(rec cartRecord) *cart.Cart {
	items := make([]*cart.Item, 0, len(rec.items))
	for _, it := range rec.items {
		items = append(items, cart.ReconstituteItem(
			it.id, it.productID, it.productName, it.quantity, it.unitPrice, it.discount, it.createdAt, it.updatedAt))
	}
	return cart.Reconstitute(rec.id, rec.customerID, items, rec.status, rec.currency, rec.createdAt, rec.updatedAt)
}
