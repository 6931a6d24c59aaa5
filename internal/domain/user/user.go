// Package user holds the application accounts of a tenant.
package user

import (
	"net/mail"
	"strings"
	"time"

	"worklog/internal/domain"
	"worklog/internal/domain/jira"
	"worklog/internal/resource"

	"golang.org/x/crypto/bcrypt"
)

// Role is a user role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// User is an application account.
type User struct {
	ID           int64
	TenantID     int64
	JiraUserID   *int64
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	JiraUser *jira.User
}

// NewUser creates a user with validation and a hashed password.
func NewUser(tenantID int64, name, email string, role Role, password string) (*User, error) {
	if role == "" {
		role = RoleMember
	}
	now := time.Now().UTC()
	u := &User{
		TenantID:  tenantID,
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user invariants.
func (u *User) Validate() error {
	if u.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", u.TenantID)
	}
	if u.Name == "" {
		return domain.Invalid("name", "name is required")
	}
	if len(u.Name) > 255 {
		return domain.Invalid("name", "name must be at most 255 characters")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return domain.Invalid("email", "invalid email address")
	}
	if u.Role != RoleAdmin && u.Role != RoleMember {
		return domain.Invalid("role", "must be admin or member")
	}
	return nil
}

// SetPassword replaces the password hash.
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return domain.Invalid("password", "must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Attributes never exposes the password hash.
func (u *User) Attributes() map[string]any {
	return map[string]any{
		"id":           u.ID,
		"jira_user_id": u.JiraUserID,
		"name":         u.Name,
		"email":        u.Email,
		"role":         u.Role,
		"created_at":   u.CreatedAt,
		"updated_at":   u.UpdatedAt,
	}
}

func (u *User) Related() map[string]resource.Model {
	out := map[string]resource.Model{}
	if u.JiraUser != nil {
		out["jira_user"] = u.JiraUser
	}
	return out
}
