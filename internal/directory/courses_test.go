package directory_test

import (
	"context"
	"testing"

	"github.com/geocoder89/learnhub/internal/directory"
	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/geocoder89/learnhub/internal/repo/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourses() *directory.CourseDirectory {
	return directory.NewCourseDirectory(memory.NewStore[*course.Course](), memory.NewStore[*course.Certificate]())
}

func saveCourse(t *testing.T, d *directory.CourseDirectory, title, instructorID string, publish bool) *course.Course {
	t.Helper()
	c, err := course.New(title, instructorID, decimal.Zero)
	require.NoError(t, err)
	if publish {
		require.NoError(t, c.AddModule("M", []string{"a", "b", "c"}))
		require.NoError(t, c.Publish())
	}
	require.NoError(t, d.Save(context.Background(), c))
	return c
}

func TestCourseDirectory_GetByID(t *testing.T) {
	ctx := context.Background()
	d := newCourses()
	c := saveCourse(t, d, "Go", "i-1", false)

	got, err := d.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.NotSame(t, c, got)

	_, err = d.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, course.ErrNotFound)
}

func TestCourseDirectory_Listings(t *testing.T) {
	ctx := context.Background()
	d := newCourses()
	saveCourse(t, d, "Go", "i-1", true)
	saveCourse(t, d, "Rust", "i-2", false)
	saveCourse(t, d, "SQL", "i-1", false)

	mine, err := d.ListByInstructor(ctx, "i-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Go", mine[0].Title)
	assert.Equal(t, "SQL", mine[1].Title)

	catalog, err := d.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Go", catalog[0].Title)
}

func TestCourseDirectory_Certificates(t *testing.T) {
	ctx := context.Background()
	d := newCourses()

	a := course.NewCertificate("u-1", "c-1")
	b := course.NewCertificate("u-2", "c-1")
	require.NoError(t, d.SaveCertificate(ctx, a))
	require.NoError(t, d.SaveCertificate(ctx, b))

	got, err := d.GetCertificate(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)

	_, err = d.GetCertificate(ctx, "missing")
	assert.ErrorIs(t, err, course.ErrCertificateNotFound)

	pair, err := d.ListCertificates(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Len(t, pair, 1)

	all, err := d.ListCertificates(ctx, "", "c-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCourseDirectory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	d := newCourses()
	c := saveCourse(t, d, "Go", "i-1", true)

	got, err := d.GetByID(ctx, c.ID)
	require.NoError(t, err)
	got.Published = false
	got.Modules[0].Lessons[0] = "rewritten"
	got.Modules = append(got.Modules, course.Module{Title: "Extra", Lessons: []string{"x"}})

	again, err := d.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, again.Published)
	assert.Equal(t, 3, again.TotalLessons())
	assert.Equal(t, "a", again.Modules[0].Lessons[0])

	listed, err := d.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 3, listed[0].TotalLessons())
}
