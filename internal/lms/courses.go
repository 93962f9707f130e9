package lms

import (
	"context"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/shopspring/decimal"
)

// CreateCourse opens a draft owned by instructorID, who must be a Teacher or
// Specialist.
func (s *Service) CreateCourse(ctx context.Context, title, instructorID string, price decimal.Decimal) (*course.Course, error) {
	var out *course.Course

	err := s.run(ctx, "create_course", func(ctx context.Context) error {
		instructor, err := s.users.GetByID(ctx, instructorID)
		if err != nil || !instructor.Role.CanAuthor() {
			return user.ErrAccessDenied
		}

		c, err := course.New(title, instructorID, price)
		if err != nil {
			return err
		}
		if err := s.courses.Save(ctx, c); err != nil {
			return err
		}

		s.log.InfoContext(ctx, "course created", "course_id", c.ID, "instructor_id", instructorID, "price", c.Price.String())
		out = c
		return nil
	})

	return out, err
}

// AddContent appends a module to a draft course.
func (s *Service) AddContent(ctx context.Context, courseID, moduleTitle string, lessons []string) (*course.Course, error) {
	var out *course.Course

	err := s.run(ctx, "add_content", func(ctx context.Context) error {
		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}

		if err := c.AddModule(moduleTitle, lessons); err != nil {
			return err
		}
		if err := s.courses.Save(ctx, c); err != nil {
			return err
		}

		out = c
		return nil
	})

	return out, err
}

// PublishCourse freezes the content and lists the course in the catalog.
// Publishing an already published course is a no-op.
func (s *Service) PublishCourse(ctx context.Context, courseID string) (*course.Course, error) {
	var out *course.Course

	err := s.run(ctx, "publish_course", func(ctx context.Context) error {
		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}

		wasPublished := c.Published
		if err := c.Publish(); err != nil {
			return err
		}
		if err := s.courses.Save(ctx, c); err != nil {
			return err
		}

		if !wasPublished {
			s.catalog.Delete(catalogCacheKey)
			s.metrics.IncCoursesPublished()
			s.log.InfoContext(ctx, "course published", "course_id", c.ID, "lessons", c.TotalLessons())
		}
		out = c
		return nil
	})

	return out, err
}

func (s *Service) Course(ctx context.Context, courseID string) (*course.Course, error) {
	var out *course.Course

	err := s.run(ctx, "get_course", func(ctx context.Context) error {
		var err error
		out, err = s.courses.GetByID(ctx, courseID)
		return err
	})

	return out, err
}

func (s *Service) CoursesByInstructor(ctx context.Context, instructorID string) ([]*course.Course, error) {
	var out []*course.Course

	err := s.run(ctx, "courses_by_instructor", func(ctx context.Context) error {
		var err error
		out, err = s.courses.ListByInstructor(ctx, instructorID)
		return err
	})

	return out, err
}
