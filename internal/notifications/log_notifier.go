package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the structured log instead of a provider.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendEnrollmentConfirmation(ctx context.Context, in EnrollmentConfirmationInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.InfoContext(ctx, "notification.enrollment_confirmation",
		"email", in.Email,
		"name", in.Name,
		"course_id", in.CourseID,
		"course_title", in.CourseTitle,
	)
	return nil
}

func (n *LogNotifier) SendCertificateIssued(ctx context.Context, in CertificateIssuedInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.InfoContext(ctx, "notification.certificate_issued",
		"email", in.Email,
		"certificate_id", in.CertificateID,
		"course_id", in.CourseID,
		"verification_url", in.VerificationURL,
	)
	return nil
}
