package course

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinLessonsToPublish = 3
	CompletePercent     = 100.0
)

type Module struct {
	Title   string   `json:"title"`
	Lessons []string `json:"lessons"`
}

// Course moves one way from draft to published. Once published its modules
// are frozen; enrollment and progress keep changing.
type Course struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	InstructorID string          `json:"instructorId"`
	Price        decimal.Decimal `json:"price"`
	Modules      []Module        `json:"modules"`
	Published    bool            `json:"published"`
	PublishedAt  *time.Time      `json:"publishedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	enrolled map[string]struct{}
	progress map[string]float64 // keys always match enrolled
}

func New(title, instructorID string, price decimal.Decimal) (*Course, error) {
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()

	return &Course{
		ID:           uuid.NewString(),
		Title:        title,
		InstructorID: instructorID,
		Price:        price,
		Modules:      []Module{},
		CreatedAt:    now,
		UpdatedAt:    now,
		enrolled:     make(map[string]struct{}),
		progress:     make(map[string]float64),
	}, nil
}

// Clone deep-copies the course, including modules and enrollment state.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}

	out := *c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		out.Modules[i] = Module{Title: m.Title, Lessons: append([]string(nil), m.Lessons...)}
	}
	if c.PublishedAt != nil {
		at := *c.PublishedAt
		out.PublishedAt = &at
	}

	out.enrolled = make(map[string]struct{}, len(c.enrolled))
	for id := range c.enrolled {
		out.enrolled[id] = struct{}{}
	}
	out.progress = make(map[string]float64, len(c.progress))
	for id, p := range c.progress {
		out.progress[id] = p
	}
	return &out
}

func (c *Course) IsFree() bool { return !c.Price.IsPositive() }

// AddModule appends a module. The lesson slice is copied so later changes by
// the caller do not leak into a course.
func (c *Course) AddModule(title string, lessons []string) error {
	if c.Published {
		return ErrContentFrozen
	}

	c.Modules = append(c.Modules, Module{
		Title:   title,
		Lessons: append([]string(nil), lessons...),
	})
	c.touch()
	return nil
}

func (c *Course) TotalLessons() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

// Publish is idempotent for a course that is already published.
func (c *Course) Publish() error {
	if c.Published {
		return nil
	}
	if c.TotalLessons() < MinLessonsToPublish {
		return ErrInvalidPublication
	}

	now := time.Now().UTC()
	c.Published = true
	c.PublishedAt = &now
	c.UpdatedAt = now
	return nil
}

// Enroll checks the enrollment rules and records the user with zero progress.
func (c *Course) Enroll(userID string, paymentSucceeded bool) error {
	if !c.Published {
		return ErrNotPublished
	}
	if c.IsEnrolled(userID) {
		return ErrAlreadyEnrolled
	}
	if !c.IsFree() && !paymentSucceeded {
		return ErrPaymentFailed
	}

	c.ensureMaps()
	c.enrolled[userID] = struct{}{}
	c.progress[userID] = 0
	c.touch()
	return nil
}

func (c *Course) IsEnrolled(userID string) bool {
	_, ok := c.enrolled[userID]
	return ok
}

// EnrolledUserIDs returns the enrolled ids sorted for stable output.
func (c *Course) EnrolledUserIDs() []string {
	ids := make([]string, 0, len(c.enrolled))
	for id := range c.enrolled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Course) EnrollmentCount() int { return len(c.enrolled) }

func (c *Course) Progress(userID string) (float64, bool) {
	p, ok := c.progress[userID]
	return p, ok
}

// SetProgress stores min(pct, 100). Values below zero are kept as given.
// It reports whether this update completed the course, meaning the stored
// value was below 100 and the new value reaches it.
func (c *Course) SetProgress(userID string, pct float64) (completed bool, err error) {
	if math.IsNaN(pct) {
		return false, ErrInvalidProgress
	}

	prev, ok := c.progress[userID]
	if !ok {
		return false, ErrNotEnrolled
	}

	completed = Completes(prev, pct)
	if pct > CompletePercent {
		pct = CompletePercent
	}

	c.progress[userID] = pct
	c.touch()
	return completed, nil
}

// Completes reports whether moving from prev to pct crosses the completion
// threshold. Re-reaching 100 never counts twice.
func Completes(prev, pct float64) bool {
	return pct >= CompletePercent && prev < CompletePercent
}

func (c *Course) ensureMaps() {
	if c.enrolled == nil {
		c.enrolled = make(map[string]struct{})
	}
	if c.progress == nil {
		c.progress = make(map[string]float64)
	}
}

func (c *Course) touch() {
	c.UpdatedAt = time.Now().UTC()
}
