package user_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew_ValidRoles(t *testing.T) {
	for _, role := range user.Roles {
		t.Run(string(role), func(t *testing.T) {
			u, err := user.New("Ada", "Ada.Lovelace@Example.COM", role)
			require.NoError(t, err)

			assert.NotEmpty(t, u.ID)
			assert.Equal(t, "ada.lovelace@example.com", u.Email)
			assert.Equal(t, role, u.Role)
			assert.True(t, u.Active)
			assert.False(t, u.RegisteredAt.IsZero())
			assert.False(t, u.CheckPassword(""))
		})
	}
}

func TestNew_InvalidRole(t *testing.T) {
	for _, role := range []user.Role{"", "student", "Admin", "Estudiante", "Teacher "} {
		_, err := user.New("Ada", "ada@example.com", role)
		require.Error(t, err, "role %q", role)
		assert.True(t, errors.Is(err, user.ErrInvalidRole))
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := user.New("A", "a@example.com", user.RoleStudent)
	require.NoError(t, err)
	b, err := user.New("B", "b@example.com", user.RoleStudent)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseRole(t *testing.T) {
	r, err := user.ParseRole("Specialist")
	require.NoError(t, err)
	assert.Equal(t, user.RoleSpecialist, r)

	_, err = user.ParseRole("Guest")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestRole_CanAuthor(t *testing.T) {
	assert.True(t, user.RoleTeacher.CanAuthor())
	assert.True(t, user.RoleSpecialist.CanAuthor())
	assert.False(t, user.RoleStudent.CanAuthor())
	assert.False(t, user.RoleAdministrator.CanAuthor())
}

func TestSetPassword(t *testing.T) {
	u, err := user.New("Ada", "ada@example.com", user.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("correct-horse", bcrypt.MinCost))
	assert.True(t, u.CheckPassword("correct-horse"))
	assert.False(t, u.CheckPassword("wrong-horse"))
	assert.False(t, u.CheckPassword(""))
}

func TestSetPassword_Policy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "empty", password: "", wantErr: true},
		{name: "seven_chars", password: "1234567", wantErr: true},
		{name: "eight_chars", password: "12345678", wantErr: false},
		{name: "too_long_for_bcrypt", password: strings.Repeat("x", 73), wantErr: true},
		{name: "multibyte_over_72_bytes", password: strings.Repeat("é", 40), wantErr: true},
		{name: "multibyte_exactly_72_bytes", password: strings.Repeat("é", 36), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := user.New("Ada", "ada@example.com", user.RoleStudent)
			require.NoError(t, err)

			err = u.SetPassword(tt.password, bcrypt.MinCost)
			if tt.wantErr {
				assert.ErrorIs(t, err, user.ErrWeakPassword)
				assert.False(t, u.CheckPassword(tt.password))
				return
			}
			assert.NoError(t, err)
			assert.True(t, u.CheckPassword(tt.password))
		})
	}
}

func TestSetPassword_RejectedKeepsPreviousHash(t *testing.T) {
	u, err := user.New("Ada", "ada@example.com", user.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("first-password", bcrypt.MinCost))

	require.Error(t, u.SetPassword("short", bcrypt.MinCost))
	assert.True(t, u.CheckPassword("first-password"))
}

func TestChangeRole(t *testing.T) {
	u, err := user.New("Ada", "ada@example.com", user.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, u.ChangeRole(user.RoleTeacher))
	assert.Equal(t, user.RoleTeacher, u.Role)

	err = u.ChangeRole("Principal")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
	assert.Equal(t, user.RoleTeacher, u.Role)
}

func TestErrorTaxonomy(t *testing.T) {
	assert.ErrorIs(t, user.ErrInvalidCredentials, user.ErrAuthentication)
	assert.ErrorIs(t, user.ErrEmailTaken, user.ErrAuthentication)
	assert.NotErrorIs(t, user.ErrInvalidRole, user.ErrAuthentication)
}

func TestClone_IsIndependent(t *testing.T) {
	u, err := user.New("Ada", "ada@example.com", user.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("correct-horse", bcrypt.MinCost))

	c := u.Clone()
	c.Email = "other@example.com"
	c.Deactivate()

	assert.Equal(t, "ada@example.com", u.Email)
	assert.True(t, u.Active)
	assert.True(t, c.CheckPassword("correct-horse"))

	var nilUser *user.User
	assert.Nil(t, nilUser.Clone())
}
