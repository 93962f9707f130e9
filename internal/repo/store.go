package repo

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Store is the storage seam used by the directories. The in-memory
// implementation lives in repo/memory; a database-backed one only has to
// satisfy this interface.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, id string, v T) error
	List(ctx context.Context, match func(T) bool) ([]T, error)
}
