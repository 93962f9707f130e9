package course

import (
	"errors"
	"fmt"

	"github.com/geocoder89/learnhub/internal/domain/shared"
)

var (
	ErrNotFound            = fmt.Errorf("course %w", shared.ErrNotFound)
	ErrCertificateNotFound = fmt.Errorf("certificate %w", shared.ErrNotFound)

	// ErrCourse is the parent of every content, lifecycle and enrollment rule violation.
	ErrCourse             = errors.New("course error")
	ErrContentFrozen      = fmt.Errorf("%w: content of a published course cannot be edited", ErrCourse)
	ErrInvalidPublication = fmt.Errorf("%w: course needs at least %d lessons to be published", ErrCourse, MinLessonsToPublish)
	ErrInvalidPrice       = fmt.Errorf("%w: price cannot be negative", ErrCourse)

	ErrInvalidEnrollment = fmt.Errorf("%w: invalid enrollment", ErrCourse)
	ErrNotPublished      = fmt.Errorf("%w: course is not open for enrollment", ErrInvalidEnrollment)
	ErrAlreadyEnrolled   = fmt.Errorf("%w: user is already enrolled", ErrInvalidEnrollment)
	ErrNotEnrolled       = fmt.Errorf("%w: user is not enrolled or course does not exist", ErrInvalidEnrollment)
	ErrPaymentFailed     = fmt.Errorf("%w: payment is required", ErrInvalidEnrollment)
	ErrInvalidProgress   = fmt.Errorf("%w: progress must be a number", ErrInvalidEnrollment)
)
