package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/ec-shop/internal/domain/user"
)

type userRecord struct {
	id           string
	email        user.Email
	passwordHash string
	roles        []user.Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]userRecord
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]userRecord)}
}

func (r *UserRepository) Save(_ context.Context, u *user.User) error {
	rec := userRecord{
		id:           u.ID(),
		email:        u.Email(),
		passwordHash: u.PasswordHash(),
		roles:        u.Roles(),
		isActive:     u.IsActive(),
		createdAt:    u.CreatedAt(),
		updatedAt:    u.UpdatedAt(),
	}

	r.mu.Lock()
	r.users[rec.id] = rec
	r.mu.Unlock()
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	rec, ok := r.users[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return restoreUser(rec), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.users {
		if rec.email.Value() == normalized {
			return restoreUser(rec), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*user.User, 0, len(r.users))
	for _, rec := range r.users {
		out = append(out, restoreUser(rec))
	}
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.users, id)
	r.mu.Unlock()
	return nil
}

func restoreUser(rec userRecord) *user.User {
	return user.Reconstitute(rec.id, rec.email, rec.passwordHash, rec.roles, rec.isActive, rec.createdAt, rec.updatedAt)
}
