package domain

// MaxQuantity is the largest quantity a single line item may carry.
const MaxQuantity = 999

// Quantity is the count of units on a cart item or order line.
// Valid values are 1 through MaxQuantity inclusive.
type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value < 1 {
		return Quantity{}, NewValidationError("quantity must be at least 1, got %d", value)
	}
	if value > MaxQuantity {
		return Quantity{}, NewValidationError("quantity cannot exceed %d, got %d", MaxQuantity, value)
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int { return q.value }

// Increase returns a new Quantity raised by amount, re-validating the bound.
func (q Quantity) Increase(amount int) (Quantity, error) {
	return NewQuantity(q.value + amount)
}

// Decrease returns a new Quantity lowered by amount, re-validating the bound.
func (q Quantity) Decrease(amount int) (Quantity, error) {
	return NewQuantity(q.value - amount)
}

// Equals compares by value; quantities are value objects.
func (q Quantity) Equals(other Quantity) bool {
	return q.value == other.value
}
