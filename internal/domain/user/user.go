package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
)

// User is an account entity. The domain stores only the bcrypt hash;
// hashing and verification live in the auth package so the entity stays
// dependency-free.
type User struct {
	id           string
	email        Email
	passwordHash string
	roles        []Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates an active user from an already-hashed password.
func New(email, passwordHash string, roles []string) (*User, error) {
	emailVO, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	roleList, err := ParseRoles(roles)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New().String(),
		email:        emailVO,
		passwordHash: passwordHash,
		roles:        roleList,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstitute rebuilds a user from persistence.
func Reconstitute(id string, email Email, passwordHash string, roles []Role, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		roles:        roles,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) Roles() []Role {
	out := make([]Role, len(u.roles))
	copy(out, u.roles)
	return out
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// UpdatePassword replaces the stored hash.
func (u *User) UpdatePassword(passwordHash string) error {
	if passwordHash == "" {
		return domain.NewValidationError("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = time.Now()
	return nil
}

func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now()
}

func (u *User) Activate() {
	u.isActive = true
	u.updatedAt = time.Now()
}

// Equals compares by identity.
func (u *User) Equals(other *User) bool {
	if other == nil {
		return false
	}
	return u.id == other.id
}
