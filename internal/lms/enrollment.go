package lms

import (
	"context"
	"errors"
	"math"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/jobs"
)

// Enroll adds userID to a published course. Paid courses need
// paymentSucceeded; a failed payment is reported as course.ErrPaymentFailed,
// which is an enrollment error.
func (s *Service) Enroll(ctx context.Context, courseID, userID string, paymentSucceeded bool) error {
	return s.run(ctx, "enroll", func(ctx context.Context) error {
		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := c.Enroll(userID, paymentSucceeded); err != nil {
			return err
		}
		if err := s.courses.Save(ctx, c); err != nil {
			return err
		}

		s.metrics.IncEnrollments()
		s.log.InfoContext(ctx, "user enrolled", "course_id", courseID, "user_id", userID, "enrolled", c.EnrollmentCount())

		s.enqueue(ctx, jobs.JobSendEnrollmentConfirmation, jobs.SendEnrollmentConfirmationPayload{
			CourseID:    c.ID,
			CourseTitle: c.Title,
			UserID:      u.ID,
			Email:       u.Email,
			Name:        u.Name,
		}, "enrollment:"+c.ID+":"+u.ID)
		return nil
	})
}

// UpdateProgress stores the completion percentage, capped at 100. Crossing
// 100 for the first time issues a certificate, which is saved before the
// progress itself and returned; otherwise the returned certificate is nil.
func (s *Service) UpdateProgress(ctx context.Context, courseID, userID string, pct float64) (*course.Certificate, error) {
	var issued *course.Certificate

	err := s.run(ctx, "update_progress", func(ctx context.Context) error {
		if math.IsNaN(pct) {
			return course.ErrInvalidProgress
		}

		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return course.ErrNotEnrolled
			}
			return err
		}

		prev, ok := c.Progress(userID)
		if !ok {
			return course.ErrNotEnrolled
		}

		if course.Completes(prev, pct) {
			cert := course.NewCertificate(userID, courseID)
			if err := s.courses.SaveCertificate(ctx, cert); err != nil {
				return err
			}
			issued = cert
		}

		if _, err := c.SetProgress(userID, pct); err != nil {
			return err
		}
		if err := s.courses.Save(ctx, c); err != nil {
			return err
		}

		if issued != nil {
			s.certificateIssued(ctx, issued)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (s *Service) Progress(ctx context.Context, courseID, userID string) (float64, error) {
	var out float64

	err := s.run(ctx, "get_progress", func(ctx context.Context) error {
		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return course.ErrNotEnrolled
			}
			return err
		}

		p, ok := c.Progress(userID)
		if !ok {
			return course.ErrNotEnrolled
		}
		out = p
		return nil
	})

	return out, err
}

func (s *Service) certificateIssued(ctx context.Context, cert *course.Certificate) {
	s.metrics.IncCertificatesIssued()
	url := cert.VerificationURL(s.verifyBaseURL)
	s.log.InfoContext(ctx, "certificate issued",
		"certificate_id", cert.ID,
		"course_id", cert.CourseID,
		"user_id", cert.UserID,
		"verification_url", url,
	)

	u, err := s.users.GetByID(ctx, cert.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "certificate holder not found, skipping notification", "user_id", cert.UserID, "err", err)
		return
	}

	s.enqueue(ctx, jobs.JobSendCertificateIssued, jobs.SendCertificateIssuedPayload{
		CertificateID:   cert.ID,
		CourseID:        cert.CourseID,
		UserID:          u.ID,
		Email:           u.Email,
		VerificationURL: url,
	}, "certificate:"+cert.ID)
}
