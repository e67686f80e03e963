package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

// MaxDistinctItems caps the number of distinct products a cart may hold.
const MaxDistinctItems = 50

type Status string

const (
	StatusActive     Status = "active"
	StatusCheckedOut Status = "checked-out"
	StatusAbandoned  Status = "abandoned"
)

// Cart is the aggregate root for a customer's shopping cart. It owns its
// items exclusively and is the only mutation entry point for them. All items
// share the cart's currency; mutations are permitted only while the cart is
// active.
type Cart struct {
	domain.Recorder

	id         string
	customerID string
	items      []*Item
	status     Status
	currency   string
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates an empty active cart and records a CartCreated event.
func New(customerID, currency string) (*Cart, error) {
	if customerID == "" {
		return nil, domain.NewValidationError("customer id is required")
	}
	if currency == "" {
		return nil, domain.NewValidationError("cart currency is required")
	}

	now := time.Now()
	c := &Cart{
		id:         uuid.New().String(),
		customerID: customerID,
		status:     StatusActive,
		currency:   currency,
		createdAt:  now,
		updatedAt:  now,
	}
	c.Record(NewCartCreated(c.id, customerID))
	return c, nil
}

// Reconstitute rebuilds a cart from persistence. No events are recorded.
func Reconstitute(id, customerID string, items []*Item, status Status, currency string, createdAt, updatedAt time.Time) *Cart {
	return &Cart{
		id:         id,
		customerID: customerID,
		items:      items,
		status:     status,
		currency:   currency,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (c *Cart) ID() string           { return c.id }
func (c *Cart) CustomerID() string   { return c.customerID }
func (c *Cart) Status() Status       { return c.status }
func (c *Cart) Currency() string     { return c.currency }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// Items returns the cart's items in insertion order.
func (c *Cart) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem puts a product in the cart. If the product is already present its
// quantity is increased instead of adding a duplicate line. A failed call
// leaves the cart unchanged.
func (c *Cart) AddItem(productID, productName string, quantity int, unitPrice money.Money) error {
	if err := c.assertActive(); err != nil {
		return err
	}
	if unitPrice.Currency() != c.currency {
		return domain.NewValidationError(
			"product currency %s does not match cart currency %s", unitPrice.Currency(), c.currency)
	}

	if existing := c.findItem(productID); existing != nil {
		if err := existing.IncreaseQuantity(quantity); err != nil {
			return err
		}
	} else {
		if len(c.items) >= MaxDistinctItems {
			return domain.NewBusinessRuleError("cart cannot contain more than %d items", MaxDistinctItems)
		}
		item, err := NewItem(productID, productName, quantity, unitPrice)
		if err != nil {
			return err
		}
		c.items = append(c.items, item)
	}

	c.Record(NewItemAdded(c.id, productID, productName, quantity, unitPrice))
	c.touch()
	return nil
}

// RemoveItem deletes the line for a product.
func (c *Cart) RemoveItem(productID string) error {
	if err := c.assertActive(); err != nil {
		return err
	}

	idx := -1
	for i, item := range c.items {
		if item.ProductID() == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.NewValidationError("item with product id %s not found in cart", productID)
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.Record(NewItemRemoved(c.id, productID))
	c.touch()
	return nil
}

// UpdateItemQuantity replaces (not increments) the quantity on a line.
func (c *Cart) UpdateItemQuantity(productID string, quantity int) error {
	if err := c.assertActive(); err != nil {
		return err
	}

	item := c.findItem(productID)
	if item == nil {
		return domain.NewValidationError("item with product id %s not found in cart", productID)
	}

	if err := item.UpdateQuantity(quantity); err != nil {
		return err
	}
	c.touch()
	return nil
}

// Clear empties the cart and records a CartCleared event.
func (c *Cart) Clear() error {
	if err := c.assertActive(); err != nil {
		return err
	}
	c.items = nil
	c.Record(NewCartCleared(c.id, c.customerID))
	c.touch()
	return nil
}

// Checkout transitions the cart to checked-out. This happens exactly once,
// paired with order creation; the cart is never mutated afterwards.
func (c *Cart) Checkout() error {
	if err := c.assertActive(); err != nil {
		return err
	}
	if len(c.items) == 0 {
		return domain.NewBusinessRuleError("cannot checkout empty cart")
	}

	c.status = StatusCheckedOut
	c.Record(NewCartCheckedOut(c.id, c.customerID, c.TotalAmount()))
	c.touch()
	return nil
}

// MarkAsAbandoned is legal only from the active status.
func (c *Cart) MarkAsAbandoned() error {
	if c.status != StatusActive {
		return domain.NewInvalidOperationError(string(c.status),
			"only active carts can be marked as abandoned, status: %s", c.status)
	}
	c.status = StatusAbandoned
	c.touch()
	return nil
}

// Subtotal sums item subtotals before discounts.
func (c *Cart) Subtotal() money.Money {
	total := money.Zero(c.currency)
	for _, item := range c.items {
		total, _ = total.Add(item.Subtotal()) // items share the cart currency
	}
	return total
}

// TotalDiscount sums item discounts.
func (c *Cart) TotalDiscount() money.Money {
	total := money.Zero(c.currency)
	for _, item := range c.items {
		total, _ = total.Add(item.Discount())
	}
	return total
}

// TotalAmount sums item totals after discounts.
func (c *Cart) TotalAmount() money.Money {
	total := money.Zero(c.currency)
	for _, item := range c.items {
		total, _ = total.Add(item.Total())
	}
	return total
}

// TotalItemCount sums quantities across all lines.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity().Value()
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) HasProduct(productID string) bool {
	return c.findItem(productID) != nil
}

func (c *Cart) findItem(productID string) *Item {
	for _, item := range c.items {
		if item.ProductID() == productID {
			return item
		}
	}
	return nil
}

func (c *Cart) assertActive() error {
	if c.status != StatusActive {
		return domain.NewInvalidOperationError(string(c.status),
			"cannot modify cart with status: %s", c.status)
	}
	return nil
}

func (c *Cart) touch() {
	c.updatedAt = time.Now()
}
