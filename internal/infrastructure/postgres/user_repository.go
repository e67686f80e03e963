package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/example/ec-shop/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, roles, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			email = $2, password_hash = $3, roles = $4, is_active = $5, updated_at = $7`,
		u.ID(), u.Email().Value(), u.PasswordHash(),
		pq.Array(user.RolesToStrings(u.Roles())), u.IsActive(),
		u.CreatedAt(), u.UpdatedAt(),
	)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx,
		`SELECT id, email, password_hash, roles, is_active, created_at, updated_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx,
		`SELECT id, email, password_hash, roles, is_active, created_at, updated_at
		 FROM users WHERE email = LOWER(TRIM($1))`, email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, password_hash, roles, is_active, created_at, updated_at
		 FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanUser(rows)
}

func scanUser(rows *sql.Rows) (*user.User, error) {
	var (
		id, emailRaw, passwordHash string
		roleStrings                pq.StringArray
		isActive                   bool
		createdAt, updatedAt       time.Time
	)
	if err := rows.Scan(&id, &emailRaw, &passwordHash, &roleStrings, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	email, err := user.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}
	roles, err := user.ParseRoles(roleStrings)
	if err != nil {
		return nil, err
	}

	return user.Reconstitute(id, email, passwordHash, roles, isActive, createdAt, updatedAt), nil
}
