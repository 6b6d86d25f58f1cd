package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/focusflow/internal/core/kv"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// Namespace is the KV scope for focusflow snapshots.
const Namespace = "focusflow"

// DefaultTaskKey is the key holding the task collection.
const DefaultTaskKey = "tasks"

// TaskRepository implements task.Repository by storing the whole collection
// under a single key of a kv.KV.
type TaskRepository struct {
	kv  *kv.TypedKV[[]task.Task]
	key string
}

var _ task.Repository = (*TaskRepository)(nil)

// NewTaskRepository creates a repository over store. An empty key uses DefaultTaskKey.
func NewTaskRepository(store kv.KV, key string) *TaskRepository {
	if key == "" {
		key = DefaultTaskKey
	}
	return &TaskRepository{
		kv:  kv.Scoped[[]task.Task](store, Namespace),
		key: key,
	}
}

// Load returns the stored snapshot, task.ErrNotFound if none was written,
// or a decode error for malformed data.
func (r *TaskRepository) Load(ctx context.Context) ([]task.Task, error) {
	tasks, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if tasks == nil {
		// a literal JSON null is not a snapshot
		return nil, fmt.Errorf("load tasks: %w", errNullSnapshot)
	}
	return tasks, nil
}

// Save replaces the stored snapshot.
func (r *TaskRepository) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := r.kv.Set(ctx, r.key, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
