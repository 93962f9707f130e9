package course

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultVerifyBaseURL = "lms.com"

// Certificate is proof of completion, issued once per user and course.
type Certificate struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	CourseID string    `json:"courseId"`
	IssuedAt time.Time `json:"issuedAt"`
}

func NewCertificate(userID, courseID string) *Certificate {
	return &Certificate{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
		IssuedAt: time.Now().UTC(),
	}
}

func (c *Certificate) Clone() *Certificate {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// VerificationURL is derived only from the certificate id and base.
func (c Certificate) VerificationURL(base string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultVerifyBaseURL
	}
	return base + "/verify/cert/" + c.ID
}
