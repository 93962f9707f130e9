package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/directory"
	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/lms"
	"github.com/geocoder89/learnhub/internal/notifications"
	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/geocoder89/learnhub/internal/queue/worker"
	"github.com/geocoder89/learnhub/internal/repo/memory"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the process-wide context: it is built once at start, owns every
// directory and background component, and is closed at exit.
type App struct {
	Log      *slog.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	Users    *directory.UserDirectory
	Courses  *directory.CourseDirectory
	Outbox   *memory.JobsRepo
	Notifier *notifications.ProtectedNotifier
	Worker   *worker.Worker
	LMS      *lms.Service

	shutdownTracer func(context.Context) error
}

// New wires the application from cfg. Log output goes to w, or stdout when w
// is nil.
func New(ctx context.Context, cfg config.Config, w io.Writer) (*App, error) {
	log := observability.NewLogger(cfg.Env, w)

	defaultRole, err := user.ParseRole(cfg.DefaultRole)
	if err != nil {
		return nil, fmt.Errorf("default role: %w", err)
	}

	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	users, err := directory.NewUserDirectory(ctx, memory.NewStore[*user.User](), directory.AdminSeed{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordCost: cfg.PasswordCost,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("user directory: %w", err), shutdown(ctx))
	}

	courses := directory.NewCourseDirectory(memory.NewStore[*course.Course](), memory.NewStore[*course.Certificate]())
	outbox := memory.NewJobsRepo()

	notifier := notifications.NewProtectedNotifier(notifications.NewLogNotifier(log), notifications.ProtectedNotifierConfig{
		Timeout:          cfg.NotifierTimeout,
		FailureThreshold: cfg.NotifierFailureThreshold,
		Cooldown:         cfg.NotifierCooldown,
		OnStateChange: func(from, to string) {
			metrics.SetNotifierState(to)
			log.Warn("notifier breaker state changed", "from", from, "to", to)
		},
	})
	metrics.SetNotifierState(notifier.State())

	jobsWorker := worker.New(worker.Config{
		PollInterval: cfg.WorkerPollInterval,
		JobTimeout:   cfg.NotifierTimeout,
	}, outbox, notifier, log, metrics)

	svc := lms.NewService(users, courses, lms.Options{
		Log:           log,
		Metrics:       metrics,
		Tracer:        observability.Tracer(),
		Outbox:        outbox,
		PasswordCost:  cfg.PasswordCost,
		DefaultRole:   defaultRole,
		CatalogTTL:    cfg.CatalogCacheTTL,
		VerifyBaseURL: cfg.CertVerifyBaseURL,
		JobsMaxTries:  cfg.JobsMaxTries,
	})

	log.Info("app initialised", "env", cfg.Env, "service", cfg.ServiceName, "tracing", cfg.OTLPEndpoint != "")

	return &App{
		Log:            log,
		Registry:       reg,
		Metrics:        metrics,
		Users:          users,
		Courses:        courses,
		Outbox:         outbox,
		Notifier:       notifier,
		Worker:         jobsWorker,
		LMS:            svc,
		shutdownTracer: shutdown,
	}, nil
}

// Close delivers whatever is still due in the outbox and flushes traces.
func (a *App) Close(ctx context.Context) error {
	n, drainErr := a.Worker.Drain(ctx)
	a.Log.Info("app closing", "jobs_delivered", n, "notifier_state", a.Notifier.State())

	if next, ok := a.Outbox.NextRunAt(ctx); ok {
		a.Log.Warn("undelivered jobs left in outbox", "next_run_at", next)
	}

	return errors.Join(drainErr, a.shutdownTracer(ctx))
}
