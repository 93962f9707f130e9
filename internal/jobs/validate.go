package jobs

import "strings"

// ValidatePayload checks that the ids a handler relies on are present.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	switch t {
	case JobSendEnrollmentConfirmation:
		var p SendEnrollmentConfirmationPayload
		switch v := payload.(type) {
		case SendEnrollmentConfirmationPayload:
			p = v
		case *SendEnrollmentConfirmationPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if blank(p.CourseID) || blank(p.UserID) || blank(p.Email) {
			return ErrInvalidJobPayload
		}
		return nil

	case JobSendCertificateIssued:
		var p SendCertificateIssuedPayload
		switch v := payload.(type) {
		case SendCertificateIssuedPayload:
			p = v
		case *SendCertificateIssuedPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if blank(p.CertificateID) || blank(p.CourseID) || blank(p.UserID) {
			return ErrInvalidJobPayload
		}
		return nil

	default:
		return ErrInvalidJobType
	}
}
