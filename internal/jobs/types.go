package jobs

type JobType string

const (
	JobSendEnrollmentConfirmation JobType = "send_enrollment_confirmation"
	JobSendCertificateIssued      JobType = "send_certificate_issued"
)

// check to see if the job type is a known constant
func (t JobType) IsValid() bool {
	switch t {
	case JobSendEnrollmentConfirmation, JobSendCertificateIssued:
		return true
	default:
		return false
	}
}
