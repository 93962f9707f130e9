package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/repo"
)

// AdminSeed describes the Administrator account created with the directory.
type AdminSeed struct {
	Name         string
	Email        string
	Password     string
	PasswordCost int
}

// ProfileUpdate carries the optional fields of a profile change. Nil or
// empty values leave the field untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// UserDirectory owns the user collection and the email -> id index. Every
// write goes through it so the index and the records never disagree.
type UserDirectory struct {
	store repo.Store[*user.User]

	mu      sync.RWMutex
	byEmail map[string]string // normalized email -> user id
	emailOf map[string]string // user id -> indexed email
}

// NewUserDirectory indexes whatever the store already holds and then makes
// sure the seed Administrator exists.
func NewUserDirectory(ctx context.Context, store repo.Store[*user.User], admin AdminSeed) (*UserDirectory, error) {
	d := &UserDirectory{
		store:   store,
		byEmail: make(map[string]string),
		emailOf: make(map[string]string),
	}

	existing, err := store.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range existing {
		d.index(u)
	}

	if err := d.ensureAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return d, nil
}

func (d *UserDirectory) ensureAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Email == "" {
		return nil
	}
	if d.EmailExists(ctx, seed.Email) {
		return nil
	}

	admin, err := user.New(seed.Name, seed.Email, user.RoleAdministrator)
	if err != nil {
		return err
	}
	if err := admin.SetPassword(seed.Password, seed.PasswordCost); err != nil {
		return err
	}
	return d.Save(ctx, admin)
}

// Save inserts or overwrites by id and points the index at the current email.
// It refuses to take over an email indexed for a different user.
func (d *UserDirectory) Save(ctx context.Context, u *user.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.saveLocked(ctx, u)
}

func (d *UserDirectory) saveLocked(ctx context.Context, u *user.User) error {
	u.Email = user.NormalizeEmail(u.Email)

	if owner, ok := d.byEmail[u.Email]; ok && owner != u.ID {
		return user.ErrEmailTaken
	}
	if err := d.store.Save(ctx, u.ID, u); err != nil {
		return err
	}

	d.index(u)
	return nil
}

func (d *UserDirectory) index(u *user.User) {
	if old, ok := d.emailOf[u.ID]; ok && old != u.Email && d.byEmail[old] == u.ID {
		delete(d.byEmail, old)
	}
	d.byEmail[u.Email] = u.ID
	d.emailOf[u.ID] = u.Email
}

func (d *UserDirectory) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := d.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (d *UserDirectory) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	d.mu.RLock()
	id, ok := d.byEmail[user.NormalizeEmail(email)]
	d.mu.RUnlock()

	if !ok {
		return nil, user.ErrNotFound
	}
	return d.GetByID(ctx, id)
}

func (d *UserDirectory) EmailExists(_ context.Context, email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.byEmail[user.NormalizeEmail(email)]
	return ok
}

func (d *UserDirectory) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	return d.store.List(ctx, func(u *user.User) bool { return u.Role == role })
}

// UpdateProfile changes name and/or email. Email availability is checked
// before anything is touched, so a collision leaves record and index as they were.
func (d *UserDirectory) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*user.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newEmail := ""
	if upd.Email != nil {
		newEmail = user.NormalizeEmail(*upd.Email)
	}
	if newEmail != "" && newEmail != u.Email {
		if owner, taken := d.byEmail[newEmail]; taken && owner != u.ID {
			return nil, user.ErrEmailTaken
		}
	}

	prevName, prevEmail := u.Name, u.Email
	if upd.Name != nil && *upd.Name != "" {
		u.Name = *upd.Name
	}
	if newEmail != "" {
		u.Email = newEmail
	}

	if err := d.saveLocked(ctx, u); err != nil {
		u.Name, u.Email = prevName, prevEmail
		return nil, err
	}
	return u, nil
}
