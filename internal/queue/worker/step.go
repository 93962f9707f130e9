package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/learnhub/internal/jobs"
	"github.com/geocoder89/learnhub/internal/notifications"
)

// ProcessOne claims and runs a single due job. It reports false when nothing
// was due.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.repo.ClaimNext(ctx, w.cfg.Now())
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return false, nil
		}
		return false, err
	}

	start := time.Now()
	err = w.execute(ctx, j)

	if err != nil {
		w.handleFailure(ctx, j, err, time.Since(start))
		return true, nil
	}

	if err := w.repo.MarkDone(ctx, j.ID); err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		w.metrics.ObserveJob(string(j.Type), "failed", time.Since(start))
		return true, err
	}

	w.metrics.ObserveJob(string(j.Type), "succeeded", time.Since(start))
	w.log.InfoContext(ctx, "job done", "job_id", j.ID, "job_type", string(j.Type), "attempts", j.Attempts)
	return true, nil
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.JobTimeout)
	defer cancel()

	payload, err := jobs.DecodePayload(j)
	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case jobs.SendEnrollmentConfirmationPayload:
		return w.notifier.SendEnrollmentConfirmation(ctx, notifications.EnrollmentConfirmationInput{
			Email:       p.Email,
			Name:        p.Name,
			CourseID:    p.CourseID,
			CourseTitle: p.CourseTitle,
		})

	case jobs.SendCertificateIssuedPayload:
		return w.notifier.SendCertificateIssued(ctx, notifications.CertificateIssuedInput{
			Email:           p.Email,
			CertificateID:   p.CertificateID,
			CourseID:        p.CourseID,
			VerificationURL: p.VerificationURL,
		})

	default:
		return fmt.Errorf("%w: %s", jobs.ErrInvalidJobType, j.Type)
	}
}

// handleFailure retries with backoff until MaxTries. Payload errors are never
// retried.
func (w *Worker) handleFailure(ctx context.Context, j jobs.Job, cause error, took time.Duration) {
	msg := cause.Error()
	permanent := errors.Is(cause, jobs.ErrInvalidJobPayload) || errors.Is(cause, jobs.ErrInvalidJobType)

	if permanent || j.Attempts >= j.MaxTries {
		if err := w.repo.MarkFailed(ctx, j.ID, msg); err != nil {
			w.log.ErrorContext(ctx, "mark failed error", "job_id", j.ID, "err", err)
		}
		w.metrics.ObserveJob(string(j.Type), "failed", took)
		w.log.ErrorContext(ctx, "job failed", "job_id", j.ID, "job_type", string(j.Type), "attempts", j.Attempts, "err", cause)
		return
	}

	runAt := w.cfg.Now().Add(w.cfg.Backoff(j.Attempts - 1))
	if err := w.repo.Reschedule(ctx, j.ID, runAt, msg); err != nil {
		w.log.ErrorContext(ctx, "reschedule error", "job_id", j.ID, "err", err)
	}
	w.metrics.ObserveJob(string(j.Type), "retried", took)
	w.log.WarnContext(ctx, "job retry scheduled", "job_id", j.ID, "job_type", string(j.Type), "attempts", j.Attempts, "run_at", runAt, "err", cause)
}
