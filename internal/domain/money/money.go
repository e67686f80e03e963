package money

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/example/ec-shop/internal/domain"
)

// Money is an immutable monetary amount in a single currency. Amounts are
// exact decimals and never negative. Arithmetic across currencies is a
// validation error; nothing is clamped or coerced.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New constructs Money under the default policy.
func New(amount decimal.Decimal, code string) (Money, error) {
	return DefaultPolicy.New(amount, code)
}

// NewFromFloat constructs Money from a float amount under the default policy.
// Non-finite amounts are rejected.
func NewFromFloat(amount float64, code string) (Money, error) {
	return DefaultPolicy.NewFromFloat(amount, code)
}

// Reconstitute rebuilds Money from persistence without a policy check; the
// stored value was validated when it entered the system.
func Reconstitute(amount decimal.Decimal, code string) Money {
	return Money{amount: amount, currency: normalizeCode(code)}
}

// Zero returns a zero amount in the given currency. The currency is not
// checked against a policy; callers pass a code that an aggregate has
// already validated at construction.
func Zero(code string) Money {
	return Money{amount: decimal.Zero, currency: normalizeCode(code)}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two amounts of the same currency.
// A negative result is a validation error, matching construction rules.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, domain.NewValidationError(
			"subtraction result cannot be negative: %s - %s", m.amount, other.amount)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply scales the amount by a bare non-negative factor. The factor has
// no currency, so no currency check applies.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domain.NewValidationError("multiplication factor cannot be negative: %s", factor)
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

// MultiplyInt scales the amount by a non-negative integer factor.
func (m Money) MultiplyInt(factor int) (Money, error) {
	return m.Multiply(decimal.NewFromInt(int64(factor)))
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

func (m Money) LessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals compares by value: equal amounts in the same currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return domain.NewValidationError(
			"cannot operate on different currencies: %s and %s", m.currency, other.currency)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
