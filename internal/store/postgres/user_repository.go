package postgres

import (
	"context"
	"time"

	"worklog/internal/domain/user"
	"worklog/internal/store/repositories"
)

// userRepository implements UserRepository
type userRepository struct {
	table[*user.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DBTX) repositories.UserRepository {
	return &userRepository{table[*user.User]{db: db, sc: userSchema}}
}

// Save saves a user (insert or update)
func (r *userRepository) Save(ctx context.Context, u *user.User) error {
	if u.ID == 0 {
		return r.insert(ctx, u)
	}
	return r.update(ctx, u)
}

func (r *userRepository) insert(ctx context.Context, u *user.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (tenant_id, jira_user_id, name, email, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		u.TenantID, u.JiraUserID, u.Name, u.Email, string(u.Role), u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET jira_user_id = $1, name = $2, email = $3, role = $4, password_hash = $5, updated_at = $6
		WHERE id = $7 AND tenant_id = $8`,
		u.JiraUserID, u.Name, u.Email, string(u.Role), u.PasswordHash, u.UpdatedAt, u.ID, u.TenantID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
