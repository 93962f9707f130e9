package observability

import (
	"errors"
	"time"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/domain/shared"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ErrorsTotal       *prometheus.CounterVec

	// Domain
	UsersRegistered    prometheus.Counter
	CoursesPublished   prometheus.Counter
	EnrollmentsTotal   prometheus.Counter
	CertificatesIssued prometheus.Counter

	// Outbox
	JobDuration   *prometheus.HistogramVec
	JobResults    *prometheus.CounterVec
	NotifierState *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "learnhub",
				Name:      "operations_total",
				Help:      "Business operations by name and result.",
			},
			[]string{"op", "result"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "learnhub",
				Name:      "operation_duration_seconds",
				Help:      "Business operation latency.",
				// bcrypt dominates register/login
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"op", "result"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "learnhub",
				Name:      "errors_total",
				Help:      "Rejected operations by name and error kind.",
			},
			[]string{"op", "kind"},
		),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "users_registered_total",
			Help:      "Accounts created through registration.",
		}),
		CoursesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "courses_published_total",
			Help:      "Courses moved from draft to published.",
		}),
		EnrollmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "enrollments_total",
			Help:      "Successful enrollments.",
		}),
		CertificatesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "certificates_issued_total",
			Help:      "Completion certificates issued.",
		}),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "learnhub",
				Subsystem: "jobs",
				Name:      "duration_seconds",
				Help:      "Outbox job execution duration by type and result",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3, 5},
			},
			[]string{"job_type", "result"}, // result=succeeded|retried|failed
		),
		JobResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "learnhub",
				Subsystem: "jobs",
				Name:      "results_total",
				Help:      "Outbox job outcomes by type and result.",
			},
			[]string{"job_type", "result"},
		),
		NotifierState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "learnhub",
				Subsystem: "notifier",
				Name:      "breaker_state",
				Help:      "1 for the current circuit breaker state of the notifier, 0 otherwise.",
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(
		m.OperationsTotal, m.OperationDuration, m.ErrorsTotal,
		m.UsersRegistered, m.CoursesPublished, m.EnrollmentsTotal, m.CertificatesIssued,
		m.JobDuration, m.JobResults, m.NotifierState,
	)

	return m
}

// Observe runs fn and records its outcome under op. A nil *Metrics just runs fn.
func (m *Metrics) Observe(op string, fn func() error) error {
	if m == nil {
		return fn()
	}

	start := time.Now()
	err := fn()

	result := "ok"
	if err != nil {
		result = "error"
		m.ErrorsTotal.WithLabelValues(op, ErrorKind(err)).Inc()
	}

	m.OperationsTotal.WithLabelValues(op, result).Inc()
	m.OperationDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
	return err
}

func (m *Metrics) ObserveJob(jobType, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.JobResults.WithLabelValues(jobType, result).Inc()
	m.JobDuration.WithLabelValues(jobType, result).Observe(d.Seconds())
}

var breakerStates = []string{"closed", "open", "half_open"}

// SetNotifierState flips the breaker gauge to state.
func (m *Metrics) SetNotifierState(state string) {
	if m == nil {
		return
	}
	for _, s := range breakerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.NotifierState.WithLabelValues(s).Set(v)
	}
}

func (m *Metrics) IncUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncCoursesPublished() {
	if m != nil {
		m.CoursesPublished.Inc()
	}
}

func (m *Metrics) IncEnrollments() {
	if m != nil {
		m.EnrollmentsTotal.Inc()
	}
}

func (m *Metrics) IncCertificatesIssued() {
	if m != nil {
		m.CertificatesIssued.Inc()
	}
}

// ErrorKind maps an error onto the label used for errors_total. The most
// specific kind wins.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, user.ErrAuthentication):
		return "authentication"
	case errors.Is(err, user.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, shared.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, shared.ErrNotFound):
		return "not_found"
	case errors.Is(err, course.ErrInvalidPublication):
		return "invalid_publication"
	case errors.Is(err, course.ErrInvalidEnrollment):
		return "invalid_enrollment"
	case errors.Is(err, course.ErrCourse):
		return "course"
	default:
		return "internal"
	}
}
