package lms

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/learnhub/internal/cache"
	"github.com/geocoder89/learnhub/internal/directory"
	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/jobs"
	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/geocoder89/learnhub/internal/security"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type UserDirectory interface {
	Save(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	EmailExists(ctx context.Context, email string) bool
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
	UpdateProfile(ctx context.Context, id string, upd directory.ProfileUpdate) (*user.User, error)
}

type CourseDirectory interface {
	Save(ctx context.Context, c *course.Course) error
	GetByID(ctx context.Context, id string) (*course.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*course.Course, error)
	ListPublished(ctx context.Context) ([]*course.Course, error)
	SaveCertificate(ctx context.Context, cert *course.Certificate) error
	GetCertificate(ctx context.Context, id string) (*course.Certificate, error)
	ListCertificates(ctx context.Context, userID, courseID string) ([]*course.Certificate, error)
}

// Outbox receives notification jobs produced by successful operations.
type Outbox interface {
	Enqueue(ctx context.Context, j jobs.Job) (jobs.Job, error)
}

type Options struct {
	Log     *slog.Logger
	Metrics *observability.Metrics
	Tracer  trace.Tracer
	Outbox  Outbox

	PasswordCost  int
	DefaultRole   user.Role
	CatalogTTL    time.Duration
	VerifyBaseURL string
	JobsMaxTries  int
}

// Service implements the business operations on top of the two directories.
// Operations run one at a time: each holds mu from validation to the last
// write, so read-then-write sequences such as progress updates cannot
// interleave. Records handed to callers are copies taken from the store, so
// callers can read or modify them without holding mu.
type Service struct {
	mu sync.Mutex

	users   UserDirectory
	courses CourseDirectory

	log     *slog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	outbox  Outbox
	catalog *cache.Cache[[]CatalogEntry]

	passwordCost  int
	defaultRole   user.Role
	verifyBaseURL string
	jobsMaxTries  int
}

func NewService(users UserDirectory, courses CourseDirectory, opts Options) *Service {
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.Tracer()
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = security.DefaultCost
	}
	if opts.DefaultRole == "" {
		opts.DefaultRole = user.RoleStudent
	}
	if opts.VerifyBaseURL == "" {
		opts.VerifyBaseURL = course.DefaultVerifyBaseURL
	}

	return &Service{
		users:         users,
		courses:       courses,
		log:           opts.Log,
		metrics:       opts.Metrics,
		tracer:        opts.Tracer,
		outbox:        opts.Outbox,
		catalog:       cache.New[[]CatalogEntry](opts.CatalogTTL),
		passwordCost:  opts.PasswordCost,
		defaultRole:   opts.DefaultRole,
		verifyBaseURL: opts.VerifyBaseURL,
		jobsMaxTries:  opts.JobsMaxTries,
	}
}

// run serializes op, wraps it in a span and records metrics. Rejections are
// logged once here.
func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(observability.WithOperation(ctx, op), "lms."+op)
	defer span.End()

	err := s.metrics.Observe(op, func() error { return fn(ctx) })

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, observability.ErrorKind(err))
		s.log.WarnContext(ctx, "operation rejected", "kind", observability.ErrorKind(err), "err", err)
	}
	return err
}

// enqueue hands a job to the outbox. Failures are logged and never undo the
// business change that produced the job.
func (s *Service) enqueue(ctx context.Context, t jobs.JobType, payload any, key string) {
	if s.outbox == nil {
		return
	}

	j, err := jobs.Build(t, payload, key, s.jobsMaxTries)
	if err == nil {
		_, err = s.outbox.Enqueue(ctx, j)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "outbox enqueue failed", "job_type", string(t), "key", key, "err", err)
	}
}
