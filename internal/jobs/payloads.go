package jobs

// SendEnrollmentConfirmationPayload tells a student their enrollment went through.
// Keep payloads ID-based plus the few fields a notifier needs to render a message.
type SendEnrollmentConfirmationPayload struct {
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle,omitempty"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
}

// SendCertificateIssuedPayload announces a completion certificate.
type SendCertificateIssuedPayload struct {
	CertificateID   string `json:"certificateId"`
	CourseID        string `json:"courseId"`
	UserID          string `json:"userId"`
	Email           string `json:"email"`
	VerificationURL string `json:"verificationUrl"`
}
