package task

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Repository that holds no snapshot yet.
var ErrNotFound = errors.New("task snapshot not found")

// Repository persists the full task collection as a single snapshot.
// Load returns the last snapshot written by Save, ErrNotFound when none
// exists, or a decode error when the stored data is malformed.
type Repository interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}
