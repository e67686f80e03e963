package product

import (
	"regexp"
	"strings"

	"github.com/example/ec-shop/internal/domain"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9-]{3,50}$`)

// Sku is a stock keeping unit: uppercase letters, digits and hyphens,
// 3 to 50 characters. Input is trimmed and uppercased before validation.
type Sku struct {
	value string
}

func NewSku(value string) (Sku, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return Sku{}, domain.NewValidationError("sku cannot be empty")
	}
	if !skuPattern.MatchString(normalized) {
		return Sku{}, domain.NewValidationError(
			"invalid sku format: %s, must be 3-50 characters of uppercase letters, numbers and hyphens", normalized)
	}
	return Sku{value: normalized}, nil
}

func (s Sku) Value() string  { return s.value }
func (s Sku) String() string { return s.value }

// Equals compares by value.
func (s Sku) Equals(other Sku) bool {
	return s.value == other.value
}
