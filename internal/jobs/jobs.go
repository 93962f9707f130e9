package jobs

import (
	"time"

	"github.com/google/uuid"
)

const DefaultMaxTries = 5

// a Job is one unit of deferred work sitting in the outbox.
type Job struct {
	ID             string    `json:"id"`
	Type           JobType   `json:"type"`
	Payload        []byte    `json:"payload"` // raw json
	Status         JobStatus `json:"status"`
	Attempts       int       `json:"attempts"`
	MaxTries       int       `json:"maxTries"`
	RunAt          time.Time `json:"runAt"`
	LastError      *string   `json:"lastError,omitempty"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// creation of a new pending job with defaults.
func NewJob(t JobType, payloadJSON []byte, runAt time.Time) (Job, error) {
	if !t.IsValid() {
		return Job{}, ErrInvalidJobType
	}

	now := time.Now().UTC()

	if runAt.IsZero() {
		runAt = now
	}

	return Job{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payloadJSON,
		Status:    JobPending,
		Attempts:  0,
		MaxTries:  DefaultMaxTries,
		RunAt:     runAt,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Build encodes and validates payload and wraps it in a pending job.
func Build(t JobType, payload any, idempotencyKey string, maxTries int) (Job, error) {
	if err := ValidatePayload(t, payload); err != nil {
		return Job{}, err
	}

	b, err := EncodePayload(t, payload)
	if err != nil {
		return Job{}, err
	}

	j, err := NewJob(t, b, time.Time{})
	if err != nil {
		return Job{}, err
	}

	if maxTries > 0 {
		j.MaxTries = maxTries
	}
	j.IdempotencyKey = idempotencyKey
	return j, nil
}
