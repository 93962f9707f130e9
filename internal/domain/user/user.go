package user

import (
	"strings"
	"time"

	"github.com/geocoder89/learnhub/internal/security"
	"github.com/google/uuid"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // always lower-cased; change it through the directory
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registeredAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	passwordHash string
}

// New builds an active user with a fresh id. An unknown role is a programmer
// error and is reported as ErrInvalidRole.
func New(name, email string, role Role) (*User, error) {
	if !role.IsValid() {
		return nil, invalidRole(role)
	}

	now := time.Now().UTC()

	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        NormalizeEmail(email),
		Role:         role,
		Active:       true,
		RegisteredAt: now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail is the canonical form used for storage and index lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword checks the credential policy and stores the bcrypt hash.
// The previous hash is kept when the new password is rejected.
func (u *User) SetPassword(plain string, cost int) error {
	if err := ValidatePassword(plain); err != nil {
		return err
	}

	hash, err := security.HashPassword(plain, cost)
	if err != nil {
		return err
	}

	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

func (u *User) CheckPassword(plain string) bool {
	if u.passwordHash == "" {
		return false
	}
	return security.CheckPassword(u.passwordHash, plain) == nil
}

func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return invalidRole(role)
	}
	u.Role = role
	u.touch()
	return nil
}

func (u *User) Deactivate() {
	u.Active = false
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}
