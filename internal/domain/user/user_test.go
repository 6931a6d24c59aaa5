package user

import (
	"testing"

	"worklog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserHashesPassword(t *testing.T) {
	u, err := NewUser(1, "Ada Lovelace", " Ada@Example.com ", "", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleMember, u.Role)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.NotContains(t, u.Attributes(), "password_hash")
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name, email string
		role        Role
		password    string
		field       string
	}{
		{"", "a@b.co", RoleAdmin, "longenough", "name"},
		{"Ada", "nope", RoleAdmin, "longenough", "email"},
		{"Ada", "a@b.co", "owner", "longenough", "role"},
		{"Ada", "a@b.co", RoleAdmin, "short", "password"},
	}
	for _, tt := range tests {
		_, err := NewUser(1, tt.name, tt.email, tt.role, tt.password)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, tt.field, ve.Field)
	}
}
