package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/learnhub/internal/repo"
)

type cloner[T any] interface {
	Clone() T
}

// clone hands back a private copy for records that implement Clone, so
// callers never share memory with the stored record.
func clone[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Store keeps records in a map and remembers insertion order so listings are
// stable. Overwriting an id keeps its original position.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
	}
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	v, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, repo.ErrNotFound
	}
	return clone(v), nil
}

func (s *Store[T]) Save(_ context.Context, id string, v T) error {
	s.mu.Lock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = clone(v)
	s.mu.Unlock()

	return nil
}

// List returns every record accepted by match. A nil match returns all.
func (s *Store[T]) List(_ context.Context, match func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		v := s.items[id]
		if match == nil || match(v) {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

var _ repo.Store[int] = (*Store[int])(nil)
