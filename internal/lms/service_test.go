package lms_test

import (
	"context"
	"testing"

	"github.com/geocoder89/learnhub/internal/directory"
	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/lms"
	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/geocoder89/learnhub/internal/repo/memory"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@lms.com"
	adminPassword = "admin-password"
	password      = "correct-horse"
)

type harness struct {
	svc     *lms.Service
	users   *directory.UserDirectory
	courses *directory.CourseDirectory
	outbox  *memory.JobsRepo
	metrics *observability.Metrics
	admin   *user.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	users, err := directory.NewUserDirectory(ctx, memory.NewStore[*user.User](), directory.AdminSeed{
		Name:         "Admin",
		Email:        adminEmail,
		Password:     adminPassword,
		PasswordCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	courses := directory.NewCourseDirectory(memory.NewStore[*course.Course](), memory.NewStore[*course.Certificate]())
	outbox := memory.NewJobsRepo()
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	svc := lms.NewService(users, courses, lms.Options{
		Metrics:      metrics,
		Outbox:       outbox,
		PasswordCost: bcrypt.MinCost,
		JobsMaxTries: 3,
	})

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)

	return &harness{svc: svc, users: users, courses: courses, outbox: outbox, metrics: metrics, admin: admin}
}

func (h *harness) register(t *testing.T, name, email string, role user.Role) *user.User {
	t.Helper()

	u, err := h.svc.RegisterUser(context.Background(), name, email, password, role)
	require.NoError(t, err)
	return u
}

// draft creates a course owned by a fresh teacher with lessons spread over one module.
func (h *harness) draft(t *testing.T, price int64, lessons ...string) (*course.Course, *user.User) {
	t.Helper()
	ctx := context.Background()

	teacher := h.register(t, "Grace", "grace-"+uuid.NewString()+"@lms.com", user.RoleTeacher)

	c, err := h.svc.CreateCourse(ctx, "Intro to Go", teacher.ID, decimal.NewFromInt(price))
	require.NoError(t, err)

	if len(lessons) > 0 {
		_, err = h.svc.AddContent(ctx, c.ID, "Basics", lessons)
		require.NoError(t, err)
	}
	return c, teacher
}

func (h *harness) published(t *testing.T, price int64) *course.Course {
	t.Helper()

	c, _ := h.draft(t, price, "Types", "Funcs", "Interfaces")
	c, err := h.svc.PublishCourse(context.Background(), c.ID)
	require.NoError(t, err)
	return c
}
