package lms

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/learnhub/internal/directory"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RegisterUser creates an account. An empty role means the configured
// default, Student unless set otherwise. A taken email or a password that
// fails the credential policy is an authentication error; an unknown role is
// reported as user.ErrInvalidRole.
func (s *Service) RegisterUser(ctx context.Context, name, email, password string, role user.Role) (*user.User, error) {
	var out *user.User

	err := s.run(ctx, "register_user", func(ctx context.Context) error {
		if s.users.EmailExists(ctx, email) {
			return user.ErrEmailTaken
		}
		if role == "" {
			role = s.defaultRole
		}

		u, err := user.New(name, email, role)
		if err != nil {
			return err
		}

		if err := u.SetPassword(password, s.passwordCost); err != nil {
			if errors.Is(err, user.ErrWeakPassword) {
				return fmt.Errorf("%w: %w", user.ErrAuthentication, err)
			}
			return err
		}

		if err := s.users.Save(ctx, u); err != nil {
			return err
		}

		s.metrics.IncUsersRegistered()
		s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "role", string(u.Role))
		out = u
		return nil
	})

	return out, err
}

// Login checks the password of an active account. Unknown email, inactive
// account and wrong password all fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	var out *user.User

	err := s.run(ctx, "login", func(ctx context.Context) error {
		u, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return user.ErrInvalidCredentials
			}
			return err
		}

		if !u.Active || !u.CheckPassword(password) {
			return user.ErrInvalidCredentials
		}

		trace.SpanFromContext(ctx).SetAttributes(attribute.String("user.id", u.ID))
		out = u
		return nil
	})

	return out, err
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, upd directory.ProfileUpdate) (*user.User, error) {
	var out *user.User

	err := s.run(ctx, "update_profile", func(ctx context.Context) error {
		u, err := s.users.UpdateProfile(ctx, userID, upd)
		if err != nil {
			return err
		}
		out = u
		return nil
	})

	return out, err
}

// ChangeRole lets an Administrator move another account to a different role.
func (s *Service) ChangeRole(ctx context.Context, actorID, targetID string, role user.Role) (*user.User, error) {
	var out *user.User

	err := s.run(ctx, "change_role", func(ctx context.Context) error {
		if err := s.requireAdmin(ctx, actorID); err != nil {
			return err
		}

		target, err := s.users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		if err := target.ChangeRole(role); err != nil {
			return err
		}
		if err := s.users.Save(ctx, target); err != nil {
			return err
		}

		s.log.InfoContext(ctx, "role changed", "actor_id", actorID, "user_id", targetID, "role", string(role))
		out = target
		return nil
	})

	return out, err
}

// Deactivate disables an account; it can no longer log in.
func (s *Service) Deactivate(ctx context.Context, actorID, targetID string) error {
	return s.run(ctx, "deactivate_user", func(ctx context.Context) error {
		if err := s.requireAdmin(ctx, actorID); err != nil {
			return err
		}

		target, err := s.users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		target.Deactivate()
		return s.users.Save(ctx, target)
	})
}

func (s *Service) UsersByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	var out []*user.User

	err := s.run(ctx, "users_by_role", func(ctx context.Context) error {
		if !role.IsValid() {
			return fmt.Errorf("%w: %q", user.ErrInvalidRole, string(role))
		}
		var err error
		out, err = s.users.ListByRole(ctx, role)
		return err
	})

	return out, err
}

func (s *Service) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil || actor.Role != user.RoleAdministrator {
		return user.ErrAccessDenied
	}
	return nil
}
