package user

import "github.com/example/ec-shop/internal/domain"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleCustomer       Role = "customer"
	RoleProductManager Role = "product-manager"
	RoleOrderManager   Role = "order-manager"
	RoleGuest          Role = "guest"
)

var validRoles = map[Role]struct{}{
	RoleAdmin:          {},
	RoleCustomer:       {},
	RoleProductManager: {},
	RoleOrderManager:   {},
	RoleGuest:          {},
}

// ParseRoles validates a role list; a user must hold at least one role.
func ParseRoles(roles []string) ([]Role, error) {
	if len(roles) == 0 {
		return nil, domain.NewValidationError("user must have at least one role")
	}
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		role := Role(r)
		if _, ok := validRoles[role]; !ok {
			return nil, domain.NewValidationError("invalid role: %s", r)
		}
		out = append(out, role)
	}
	return out, nil
}

func RolesToStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
