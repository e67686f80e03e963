package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := New("Alice@Example.COM", "hashed-password", []string{"customer"})

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID())
	assert.Equal(t, "alice@example.com", u.Email().Value())
	assert.Equal(t, []Role{RoleCustomer}, u.Roles())
	assert.True(t, u.IsActive())
	assert.False(t, u.IsAdmin())
}

func TestNew_Validation(t *testing.T) {
	_, err := New("not-an-email", "hash", []string{"customer"})
	require.Error(t, err)

	_, err = New("alice@example.com", "", []string{"customer"})
	require.Error(t, err)

	_, err = New("alice@example.com", "hash", nil)
	require.Error(t, err)

	_, err = New("alice@example.com", "hash", []string{"superuser"})
	require.Error(t, err)
}

func TestRoles(t *testing.T) {
	u, err := New("ops@example.com", "hash", []string{"admin", "order-manager"})
	require.NoError(t, err)

	assert.True(t, u.IsAdmin())
	assert.True(t, u.HasRole(RoleOrderManager))
	assert.False(t, u.HasRole(RoleProductManager))
	assert.True(t, u.HasAnyRole(RoleGuest, RoleOrderManager))
	assert.False(t, u.HasAnyRole(RoleGuest, RoleCustomer))
}

func TestUpdatePassword(t *testing.T) {
	u, err := New("alice@example.com", "old-hash", []string{"customer"})
	require.NoError(t, err)

	require.NoError(t, u.UpdatePassword("new-hash"))
	assert.Equal(t, "new-hash", u.PasswordHash())

	require.Error(t, u.UpdatePassword(""))
	assert.Equal(t, "new-hash", u.PasswordHash())
}

func TestActivation(t *testing.T) {
	u, err := New("alice@example.com", "hash", []string{"customer"})
	require.NoError(t, err)

	u.Deactivate()
	assert.False(t, u.IsActive())

	u.Activate()
	assert.True(t, u.IsActive())
}

func TestReconstitute(t *testing.T) {
	email, err := NewEmail("bob@example.com")
	require.NoError(t, err)
	now := time.Now()

	u := Reconstitute("user-1", email, "hash", []Role{RoleAdmin}, false, now, now)

	assert.Equal(t, "user-1", u.ID())
	assert.False(t, u.IsActive())
	assert.True(t, u.IsAdmin())
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "alice@example.com", "alice@example.com", false},
		{"normalized", "  Alice@EXAMPLE.com ", "alice@example.com", false},
		{"plus addressing", "alice+shop@example.com", "alice+shop@example.com", false},
		{"empty", "", "", true},
		{"missing at", "alice.example.com", "", true},
		{"missing domain dot", "alice@example", "", true},
		{"space inside", "alice smith@example.com", "", true},
		{"double at", "alice@@example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.Value())
		})
	}
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles([]string{"admin", "customer"})
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleAdmin, RoleCustomer}, roles)

	_, err = ParseRoles(nil)
	require.Error(t, err)

	_, err = ParseRoles([]string{"customer", "root"})
	require.Error(t, err)
}

func TestRolesToStrings(t *testing.T) {
	assert.Equal(t, []string{"admin", "guest"}, RolesToStrings([]Role{RoleAdmin, RoleGuest}))
}
