package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/geocoder89/learnhub/internal/jobs"
	"github.com/geocoder89/learnhub/internal/repo/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(t *testing.T, key string) jobs.Job {
	t.Helper()
	j, err := jobs.Build(jobs.JobSendEnrollmentConfirmation, jobs.SendEnrollmentConfirmationPayload{
		CourseID: "c1",
		UserID:   "u1",
		Email:    "u1@example.com",
	}, key, 0)
	require.NoError(t, err)
	return j
}

func TestJobsRepo_EnqueueIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := memory.NewJobsRepo()

	first, err := r.Enqueue(ctx, newJob(t, "enroll:c1:u1"))
	require.NoError(t, err)
	second, err := r.Enqueue(ctx, newJob(t, "enroll:c1:u1"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestJobsRepo_ClaimLifecycle(t *testing.T) {
	ctx := context.Background()
	r := memory.NewJobsRepo()
	now := time.Now().UTC()

	j, err := r.Enqueue(ctx, newJob(t, ""))
	require.NoError(t, err)

	claimed, err := r.ClaimNext(ctx, now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, j.ID, claimed.ID)
	assert.Equal(t, jobs.JobProcessing, claimed.Status)
	assert.Equal(t, 1, claimed.Attempts)

	_, err = r.ClaimNext(ctx, now.Add(time.Second))
	assert.ErrorIs(t, err, jobs.ErrJobNotFound)

	retryAt := now.Add(time.Minute)
	require.NoError(t, r.Reschedule(ctx, j.ID, retryAt, "provider down"))

	_, err = r.ClaimNext(ctx, now.Add(time.Second))
	assert.ErrorIs(t, err, jobs.ErrJobNotFound, "not due yet")

	next, ok := r.NextRunAt(ctx)
	require.True(t, ok)
	assert.Equal(t, retryAt, next)

	claimed, err = r.ClaimNext(ctx, retryAt)
	require.NoError(t, err)
	assert.Equal(t, 2, claimed.Attempts)
	require.NotNil(t, claimed.LastError)

	require.NoError(t, r.MarkDone(ctx, j.ID))
	done, err := r.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, jobs.JobSucceeded, done.Status)
	assert.Nil(t, done.LastError)

	_, ok = r.NextRunAt(ctx)
	assert.False(t, ok)
}

func TestJobsRepo_MarkFailedAndFilter(t *testing.T) {
	ctx := context.Background()
	r := memory.NewJobsRepo()

	a, err := r.Enqueue(ctx, newJob(t, "a"))
	require.NoError(t, err)
	_, err = r.Enqueue(ctx, newJob(t, "b"))
	require.NoError(t, err)

	require.NoError(t, r.MarkFailed(ctx, a.ID, "gave up"))

	failed, err := r.List(ctx, jobs.JobFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, a.ID, failed[0].ID)

	_, err = r.List(ctx, "bogus")
	assert.ErrorIs(t, err, jobs.ErrInvalidJobStatus)

	assert.ErrorIs(t, r.MarkDone(ctx, "missing"), jobs.ErrJobNotFound)
}
