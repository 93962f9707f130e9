package user

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordLength is in bytes: bcrypt rejects longer inputs, while the
// validator's max counts runes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentialPolicy struct {
	Password string `validate:"required,min=8,max=72"`
}

// ValidatePassword enforces the credential policy. Violations wrap ErrWeakPassword.
func ValidatePassword(plain string) error {
	err := validate.Struct(credentialPolicy{Password: plain})
	if err == nil {
		if len(plain) > MaxPasswordLength {
			return fmt.Errorf("%w (rule=max_bytes)", ErrWeakPassword)
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w (rule=%s)", ErrWeakPassword, fieldErrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrWeakPassword, err)
}
