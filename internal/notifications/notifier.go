package notifications

import "context"

type EnrollmentConfirmationInput struct {
	Email       string
	Name        string
	CourseID    string
	CourseTitle string
}

type CertificateIssuedInput struct {
	Email           string
	CertificateID   string
	CourseID        string
	VerificationURL string
}

type Notifier interface {
	SendEnrollmentConfirmation(ctx context.Context, input EnrollmentConfirmationInput) error
	SendCertificateIssued(ctx context.Context, input CertificateIssuedInput) error
}
