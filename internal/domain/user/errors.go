package user

import (
	"errors"
	"fmt"

	"github.com/geocoder89/learnhub/internal/domain/shared"
)

var (
	ErrNotFound     = fmt.Errorf("user %w", shared.ErrNotFound)
	ErrAccessDenied = fmt.Errorf("%w: role not permitted", shared.ErrAccessDenied)

	// ErrAuthentication is the parent of every registration, login and
	// profile failure.
	ErrAuthentication     = errors.New("authentication error")
	ErrInvalidCredentials = fmt.Errorf("%w: email or password is incorrect", ErrAuthentication)
	ErrEmailTaken         = fmt.Errorf("%w: email is already in use", ErrAuthentication)

	ErrInvalidRole  = errors.New("invalid role")
	ErrWeakPassword = errors.New("password must be between 8 and 72 characters")
)
