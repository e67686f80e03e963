package order

import (
	"fmt"
	"strings"

	"github.com/example/ec-shop/internal/domain"
)

// ShippingAddress is an immutable value object; every field must be
// non-empty after trimming.
type ShippingAddress struct {
	street  string
	city    string
	state   string
	zipCode string
	country string
}

func NewShippingAddress(street, city, state, zipCode, country string) (ShippingAddress, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"street", street},
		{"city", city},
		{"state", state},
		{"zip code", zipCode},
		{"country", country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ShippingAddress{}, domain.NewValidationError("%s is required", f.name)
		}
	}

	return ShippingAddress{
		street:  street,
		city:    city,
		state:   state,
		zipCode: zipCode,
		country: country,
	}, nil
}

func (a ShippingAddress) Street() string  { return a.street }
func (a ShippingAddress) City() string    { return a.city }
func (a ShippingAddress) State() string   { return a.state }
func (a ShippingAddress) ZipCode() string { return a.zipCode }
func (a ShippingAddress) Country() string { return a.country }

// Equals compares structurally; addresses are value objects.
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

func (a ShippingAddress) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.zipCode, a.country)
}
