package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
	"github.com/example/ec-shop/internal/domain/order"
)

type orderLineRecord struct {
	id          string
	productID   string
	productName string
	quantity    domain.Quantity
	unitPrice   money.Money
	discount    money.Money
	createdAt   time.Time
}

type orderRecord struct {
	id             string
	customerID     string
	lines          []orderLineRecord
	address        order.ShippingAddress
	status         order.Status
	currency       string
	trackingNumber string
	createdAt      time.Time
	updatedAt      time.Time
}

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]orderRecord
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]orderRecord)}
}

func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	rec := orderRecord{
		id:             o.ID(),
		customerID:     o.CustomerID(),
		address:        o.ShippingAddress(),
		status:         o.Status(),
		currency:       o.Currency(),
		trackingNumber: o.TrackingNumber(),
		createdAt:      o.CreatedAt(),
		updatedAt:      o.UpdatedAt(),
	}
	for _, line := range o.Lines() {
		rec.lines = append(rec.lines, orderLineRecord{
			id:          line.ID(),
			productID:   line.ProductID(),
			productName: line.ProductName(),
			quantity:    line.Quantity(),
			unitPrice:   line.UnitPrice(),
			discount:    line.Discount(),
			createdAt:   line.CreatedAt(),
		})
	}

	r.mu.Lock()
	r.orders[rec.id] = rec
	r.mu.Unlock()
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	rec, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return restoreOrder(rec), nil
}

// FindByCustomerID returns the customer's orders, newest first.
func (r *OrderRepository) FindByCustomerID(_ context.Context, customerID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*order.Order
	for _, rec := range r.orders {
		if rec.customerID == customerID {
			out = append(out, restoreOrder(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.orders, id)
	r.mu.Unlock()
	return nil
}

func restoreOrder(rec orderRecord) *order.Order {
	lines := make([]*order.Line, 0, len(rec.lines))
	for _, l := range rec.lines {
		lines = append(lines, order.ReconstituteLine(
			l.id, l.productID, l.productName, l.quantity, l.unitPrice, l.discount, l.createdAt))
	}
	return order.Reconstitute(
		rec.id, rec.customerID, lines, rec.address, rec.status, rec.currency, rec.trackingNumber, rec.createdAt, rec.updatedAt)
}
