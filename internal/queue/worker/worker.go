package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/geocoder89/learnhub/internal/jobs"
	"github.com/geocoder89/learnhub/internal/notifications"
	"github.com/geocoder89/learnhub/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, now time.Time) (jobs.Job, error)
	MarkDone(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
}

type Config struct {
	PollInterval time.Duration
	JobTimeout   time.Duration
	Backoff      func(attempt int) time.Duration
	Now          func() time.Time
}

// Worker delivers outbox jobs through a Notifier.
type Worker struct {
	cfg      Config
	repo     JobsRepository
	notifier notifications.Notifier
	log      *slog.Logger
	metrics  *observability.Metrics
}

func New(cfg Config, repo JobsRepository, notifier notifications.Notifier, log *slog.Logger, metrics *observability.Metrics) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Second
	}
	if cfg.Backoff == nil {
		cfg.Backoff = ExponentialBackoff
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if log == nil {
		log = slog.Default()
	}

	return &Worker{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		log:      log,
		metrics:  metrics,
	}
}

// Drain processes every job that is due now and returns how many it handled.
// Jobs that fail are rescheduled into the future, so Drain always ends.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	processed := 0

	for {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		ok, err := w.ProcessOne(ctx)
		if err != nil {
			return processed, err
		}
		if !ok {
			return processed, nil
		}
		processed++
	}
}

// Run drains the outbox every PollInterval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.log.InfoContext(ctx, "worker started", "poll_interval", w.cfg.PollInterval.String())

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal")
			return nil

		case <-ticker.C:
			if _, err := w.Drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.log.ErrorContext(ctx, "drain failed", "err", err)
			}
		}
	}
}
