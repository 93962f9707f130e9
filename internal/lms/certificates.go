package lms

import (
	"context"

	"github.com/geocoder89/learnhub/internal/domain/course"
)

// Certificate looks up a certificate for verification.
func (s *Service) Certificate(ctx context.Context, id string) (*course.Certificate, error) {
	var out *course.Certificate

	err := s.run(ctx, "get_certificate", func(ctx context.Context) error {
		var err error
		out, err = s.courses.GetCertificate(ctx, id)
		return err
	})

	return out, err
}

// CertificatesFor lists certificates for a user and course. Empty ids act as wildcards.
func (s *Service) CertificatesFor(ctx context.Context, userID, courseID string) ([]*course.Certificate, error) {
	var out []*course.Certificate

	err := s.run(ctx, "list_certificates", func(ctx context.Context) error {
		var err error
		out, err = s.courses.ListCertificates(ctx, userID, courseID)
		return err
	})

	return out, err
}

func (s *Service) VerificationURL(cert *course.Certificate) string {
	return cert.VerificationURL(s.verifyBaseURL)
}
