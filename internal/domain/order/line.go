package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

// Line is a line item in an order. Lines are fixed at order creation; the
// order exposes no line-level mutation.
type Line struct {
	id          string
	productID   string
	productName string
	quantity    domain.Quantity
	unitPrice   money.Money
	discount    money.Money
	createdAt   time.Time
}

// NewLine creates an order line. A zero-valued discount defaults to zero in
// the unit price's currency.
func NewLine(productID, productName string, quantity int, unitPrice, discount money.Money) (*Line, error) {
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

	if discount.Currency() == "" {
		discount = money.Zero(unitPrice.Currency())
	}

	l := &Line{
		id:          uuid.New().String(),
		productID:   productID,
		productName: productName,
		quantity:    qty,
		unitPrice:   unitPrice,
		createdAt:   time.Now(),
	}
	if err := l.ApplyDiscount(discount); err != nil {
		return nil, err
	}
	return l, nil
}

// ReconstituteLine rebuilds a line from persistence.
func ReconstituteLine(id, productID, productName string, quantity domain.Quantity, unitPrice, discount money.Money, createdAt time.Time) *Line {
	return &Line{
		id:          id,
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discount:    discount,
		createdAt:   createdAt,
	}
}

func (l *Line) ID() string                { return l.id }
func (l *Line) ProductID() string         { return l.productID }
func (l *Line) ProductName() string       { return l.productName }
func (l *Line) Quantity() domain.Quantity { return l.quantity }
func (l *Line) UnitPrice() money.Money    { return l.unitPrice }
func (l *Line) Discount() money.Money     { return l.discount }
func (l *Line) CreatedAt() time.Time      { return l.createdAt }

// Subtotal is unit price times quantity.
func (l *Line) Subtotal() money.Money {
	sub, _ := l.unitPrice.MultiplyInt(l.quantity.Value()) // quantity is always >= 1
	return sub
}

// Total is subtotal minus discount.
func (l *Line) Total() money.Money {
	total, _ := l.Subtotal().Subtract(l.discount) // discount never exceeds subtotal
	return total
}

// ApplyDiscount sets the line discount. It must share the line currency and
// cannot exceed the subtotal.
func (l *Line) ApplyDiscount(discount money.Money) error {
	sub := l.Subtotal()
	exceeds, err := discount.GreaterThan(sub)
	if err != nil {
		return err
	}
	if exceeds {
		return domain.NewValidationError(
			"discount %s exceeds line subtotal %s", discount.String(), sub.String())
	}
	l.discount = discount
	return nil
}

// Equals compares by identity.
func (l *Line) Equals(other *Line) bool {
	if other == nil {
		return false
	}
	return l.id == other.id
}
