package directory

import (
	"context"
	"errors"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/repo"
)

// CourseDirectory owns courses and issued certificates.
type CourseDirectory struct {
	courses repo.Store[*course.Course]
	certs   repo.Store[*course.Certificate]
}

func NewCourseDirectory(courses repo.Store[*course.Course], certs repo.Store[*course.Certificate]) *CourseDirectory {
	return &CourseDirectory{
		courses: courses,
		certs:   certs,
	}
}

func (d *CourseDirectory) Save(ctx context.Context, c *course.Course) error {
	return d.courses.Save(ctx, c.ID, c)
}

func (d *CourseDirectory) GetByID(ctx context.Context, id string) (*course.Course, error) {
	c, err := d.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, course.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (d *CourseDirectory) ListByInstructor(ctx context.Context, instructorID string) ([]*course.Course, error) {
	return d.courses.List(ctx, func(c *course.Course) bool { return c.InstructorID == instructorID })
}

// ListPublished is the public catalog.
func (d *CourseDirectory) ListPublished(ctx context.Context) ([]*course.Course, error) {
	return d.courses.List(ctx, func(c *course.Course) bool { return c.Published })
}

func (d *CourseDirectory) SaveCertificate(ctx context.Context, cert *course.Certificate) error {
	return d.certs.Save(ctx, cert.ID, cert)
}

func (d *CourseDirectory) GetCertificate(ctx context.Context, id string) (*course.Certificate, error) {
	cert, err := d.certs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, course.ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

// ListCertificates filters by user and course; an empty filter matches all.
func (d *CourseDirectory) ListCertificates(ctx context.Context, userID, courseID string) ([]*course.Certificate, error) {
	return d.certs.List(ctx, func(c *course.Certificate) bool {
		return (userID == "" || c.UserID == userID) && (courseID == "" || c.CourseID == courseID)
	})
}
