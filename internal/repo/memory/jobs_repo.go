package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/learnhub/internal/jobs"
)

// JobsRepo is the in-process outbox. Jobs with the same idempotency key are
// enqueued once.
type JobsRepo struct {
	mu    sync.Mutex
	items map[string]*jobs.Job
	keys  map[string]string // idempotency key -> job id
	seq   []string
}

func NewJobsRepo() *JobsRepo {
	return &JobsRepo{
		items: make(map[string]*jobs.Job),
		keys:  make(map[string]string),
	}
}

// Enqueue stores j, or returns the job already stored under its idempotency key.
func (r *JobsRepo) Enqueue(_ context.Context, j jobs.Job) (jobs.Job, error) {
	if !j.Type.IsValid() {
		return jobs.Job{}, jobs.ErrInvalidJobType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if j.IdempotencyKey != "" {
		if id, ok := r.keys[j.IdempotencyKey]; ok {
			return *r.items[id], nil
		}
		r.keys[j.IdempotencyKey] = j.ID
	}

	stored := j
	r.items[j.ID] = &stored
	r.seq = append(r.seq, j.ID)
	return j, nil
}

// ClaimNext picks the pending job with the earliest RunAt not after now and
// moves it to processing.
func (r *JobsRepo) ClaimNext(_ context.Context, now time.Time) (jobs.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *jobs.Job
	for _, id := range r.seq {
		j := r.items[id]
		if j.Status != jobs.JobPending || j.RunAt.After(now) {
			continue
		}
		if next == nil || j.RunAt.Before(next.RunAt) {
			next = j
		}
	}

	if next == nil {
		return jobs.Job{}, jobs.ErrJobNotFound
	}

	next.Status = jobs.JobProcessing
	next.Attempts++
	next.UpdatedAt = now
	return *next, nil
}

func (r *JobsRepo) MarkDone(_ context.Context, id string) error {
	return r.update(id, func(j *jobs.Job) {
		j.Status = jobs.JobSucceeded
		j.LastError = nil
	})
}

// Reschedule returns a job to pending so it can be claimed again at runAt.
func (r *JobsRepo) Reschedule(_ context.Context, id string, runAt time.Time, errMsg string) error {
	return r.update(id, func(j *jobs.Job) {
		j.Status = jobs.JobPending
		j.RunAt = runAt
		j.LastError = &errMsg
	})
}

func (r *JobsRepo) MarkFailed(_ context.Context, id string, errMsg string) error {
	return r.update(id, func(j *jobs.Job) {
		j.Status = jobs.JobFailed
		j.LastError = &errMsg
	})
}

func (r *JobsRepo) Get(_ context.Context, id string) (jobs.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]
	if !ok {
		return jobs.Job{}, jobs.ErrJobNotFound
	}
	return *j, nil
}

// List returns jobs in enqueue order, optionally filtered by status.
func (r *JobsRepo) List(_ context.Context, status jobs.JobStatus) ([]jobs.Job, error) {
	if status != "" && !status.IsValid() {
		return nil, jobs.ErrInvalidJobStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]jobs.Job, 0, len(r.seq))
	for _, id := range r.seq {
		j := r.items[id]
		if status == "" || j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

// NextRunAt reports the earliest RunAt among pending jobs.
func (r *JobsRepo) NextRunAt(_ context.Context) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]time.Time, 0)
	for _, j := range r.items {
		if j.Status == jobs.JobPending {
			pending = append(pending, j.RunAt)
		}
	}
	if len(pending) == 0 {
		return time.Time{}, false
	}

	sort.Slice(pending, func(a, b int) bool { return pending[a].Before(pending[b]) })
	return pending[0], true
}

func (r *JobsRepo) update(id string, fn func(*jobs.Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]
	if !ok {
		return jobs.ErrJobNotFound
	}

	fn(j)
	j.UpdatedAt = time.Now().UTC()
	return nil
}
