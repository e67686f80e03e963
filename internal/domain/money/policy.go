package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/example/ec-shop/internal/domain"
)

// Policy is the set of currencies a deployment accepts. The set is
// configuration, not a domain constant; construct one from config and pass
// it where money enters the system.
type Policy struct {
	codes []string
}

// DefaultPolicy accepts the currencies the storefront launched with.
var DefaultPolicy = MustPolicy("CAD", "USD", "EUR", "GBP")

// NewPolicy builds a policy from ISO 4217 codes. Codes are normalized to
// uppercase and deduplicated; unknown codes are rejected.
func NewPolicy(codes ...string) (Policy, error) {
	if len(codes) == 0 {
		return Policy{}, domain.NewValidationError("currency policy requires at least one currency")
	}

	seen := make(map[string]struct{}, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		c := normalizeCode(code)
		if _, err := currency.ParseISO(c); err != nil {
			return Policy{}, domain.NewValidationError("invalid ISO 4217 currency code: %q", code)
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		normalized = append(normalized, c)
	}

	return Policy{codes: normalized}, nil
}

// MustPolicy is NewPolicy for statically known code lists.
func MustPolicy(codes ...string) Policy {
	p, err := NewPolicy(codes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Supports reports whether the policy accepts the currency code.
func (p Policy) Supports(code string) bool {
	c := normalizeCode(code)
	for _, s := range p.codes {
		if s == c {
			return true
		}
	}
	return false
}

// Supported returns the accepted codes in declaration order.
func (p Policy) Supported() []string {
	out := make([]string, len(p.codes))
	copy(out, p.codes)
	return out
}

// Validate returns a validation error if the code is not in the policy.
func (p Policy) Validate(code string) error {
	if !p.Supports(code) {
		return domain.NewValidationError(
			"unsupported currency: %s, supported: %s", normalizeCode(code), strings.Join(p.codes, ", "))
	}
	return nil
}

// New constructs Money in a policy-approved currency. Negative amounts are
// rejected; construction failure is a validation error, not clamping.
func (p Policy) New(amount decimal.Decimal, code string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domain.NewValidationError("amount cannot be negative: %s", amount)
	}
	if err := p.Validate(code); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: normalizeCode(code)}, nil
}

// NewFromFloat constructs Money from a float amount, rejecting NaN and infinities.
func (p Policy) NewFromFloat(amount float64, code string) (Money, error) {
	if !isFinite(amount) {
		return Money{}, domain.NewValidationError("amount must be a finite number")
	}
	return p.New(decimal.NewFromFloat(amount), code)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
