package user

import (
	"regexp"
	"strings"

	"github.com/example/ec-shop/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a normalized (lowercased, trimmed) email address.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Email{}, domain.NewValidationError("email cannot be empty")
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, domain.NewValidationError("invalid email format: %s", normalized)
	}
	return Email{value: normalized}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Equals compares by value.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
