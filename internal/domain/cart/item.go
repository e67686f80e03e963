package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

// Item is a line in a shopping cart. Items are entities: identified by id,
// owned exclusively by one cart, never shared between aggregates.
type Item struct {
	id          string
	productID   string
	productName string
	quantity    domain.Quantity
	unitPrice   money.Money
	discount    money.Money
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a cart item with a zero discount in the unit price's currency.
func NewItem(productID, productName string, quantity int, unitPrice money.Money) (*Item, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product id is required")
	}
	if productName == "" {
		return nil, domain.NewValidationError("product name is required")
	}

	qty, err := domain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Item{
		id:          uuid.New().String(),
		productID:   productID,
		productName: productName,
		quantity:    qty,
		unitPrice:   unitPrice,
		discount:    money.Zero(unitPrice.Currency()),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstituteItem rebuilds an item from persistence without re-running
// creation-time validation.
func ReconstituteItem(id, productID, productName string, quantity domain.Quantity, unitPrice, discount money.Money, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discount:    discount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i *Item) ID() string                { return i.id }
func (i *Item) ProductID() string         { return i.productID }
func (i *Item) ProductName() string       { return i.productName }
func (i *Item) Quantity() domain.Quantity { return i.quantity }
func (i *Item) UnitPrice() money.Money    { return i.unitPrice }
func (i *Item) Discount() money.Money     { return i.discount }
func (i *Item) CreatedAt() time.Time      { return i.createdAt }
func (i *Item) UpdatedAt() time.Time      { return i.updatedAt }

// IncreaseQuantity raises the quantity by amount. On a bound violation the
// item is left unchanged.
func (i *Item) IncreaseQuantity(amount int) error {
	qty, err := i.quantity.Increase(amount)
	if err != nil {
		return err
	}
	i.quantity = qty
	i.touch()
	return nil
}

// DecreaseQuantity lowers the quantity by amount, keeping it at least 1.
func (i *Item) DecreaseQuantity(amount int) error {
	qty, err := i.quantity.Decrease(amount)
	if err != nil {
		return err
	}
	i.quantity = qty
	i.touch()
	return nil
}

// UpdateQuantity replaces the quantity outright.
func (i *Item) UpdateQuantity(quantity int) error {
	qty, err := domain.NewQuantity(quantity)
	if err != nil {
		return err
	}
	i.quantity = qty
	i.touch()
	return nil
}

// ApplyDiscount sets the item discount. The discount must be in the unit
// price's currency and may not exceed the subtotal.
func (i *Item) ApplyDiscount(discount money.Money) error {
	exceeds, err := discount.GreaterThan(i.Subtotal())
	if err != nil {
		return err
	}
	if exceeds {
		return domain.NewValidationError("discount %s cannot exceed subtotal %s", discount, i.Subtotal())
	}
	i.discount = discount
	i.touch()
	return nil
}

// Subtotal is unit price times quantity.
func (i *Item) Subtotal() money.Money {
	sub, _ := i.unitPrice.MultiplyInt(i.quantity.Value()) // quantity is always >= 1
	return sub
}

// Total is subtotal minus discount.
func (i *Item) Total() money.Money {
	total, _ := i.Subtotal().Subtract(i.discount) // discount never exceeds subtotal
	return total
}

// Equals compares by identity: two items are the same entity iff ids match.
func (i *Item) Equals(other *Item) bool {
	if other == nil {
		return false
	}
	return i.id == other.id
}

func (i *Item) touch() {
	i.updatedAt = time.Now()
}
