package lms

import (
	"context"
	"time"

	"github.com/geocoder89/learnhub/internal/domain/course"
	"github.com/shopspring/decimal"
)

const catalogCacheKey = "catalog:v1"

// CatalogEntry is the public view of a published course. Everything in it is
// frozen at publication, which is what makes it safe to cache.
type CatalogEntry struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	InstructorID string          `json:"instructorId"`
	Price        decimal.Decimal `json:"price"`
	Modules      int             `json:"modules"`
	Lessons      int             `json:"lessons"`
	PublishedAt  time.Time       `json:"publishedAt"`
}

// Catalog lists published courses. Results are cached until the TTL expires
// or another course is published.
func (s *Service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry

	err := s.run(ctx, "catalog", func(ctx context.Context) error {
		entries, hit, err := s.catalog.GetOrLoad(catalogCacheKey, func() ([]CatalogEntry, error) {
			published, err := s.courses.ListPublished(ctx)
			if err != nil {
				return nil, err
			}
			return toCatalog(published), nil
		})
		if err != nil {
			return err
		}

		s.log.DebugContext(ctx, "catalog served", "entries", len(entries), "cache_hit", hit)
		out = append([]CatalogEntry(nil), entries...)
		return nil
	})

	return out, err
}

func toCatalog(courses []*course.Course) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(courses))

	for _, c := range courses {
		e := CatalogEntry{
			ID:           c.ID,
			Title:        c.Title,
			InstructorID: c.InstructorID,
			Price:        c.Price,
			Modules:      len(c.Modules),
			Lessons:      c.TotalLessons(),
		}
		if c.PublishedAt != nil {
			e.PublishedAt = *c.PublishedAt
		}
		entries = append(entries, e)
	}
	return entries
}
