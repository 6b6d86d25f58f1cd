// Package focusflow holds the application services: the task store that is
// the single source of truth for tasks and focus, and the focus session that
// drives the countdown for the focused task.
package focusflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/focusflow/internal/core/logging"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// FocusObserver is notified synchronously whenever the focused task changes,
// including when the focused task is refreshed by an update. prev and next
// are nil when nothing is focused.
type FocusObserver interface {
	FocusChanged(prev, next *task.Task)
}

// StoreOption configures a TaskStore.
type StoreOption func(*TaskStore)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *TaskStore) { s.now = now }
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *TaskStore) { s.newID = newID }
}

// TaskStore owns the ordered task collection and the focused task. Every
// mutation updates memory first and then writes the full collection through
// the repository. It is not safe for concurrent use: callers drive it from a
// single event loop.
type TaskStore struct {
	repo      task.Repository
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
	tasks     []task.Task
	current   *task.Task
	observers []FocusObserver
	seeded    bool
}

// NewTaskStore loads the collection from repo. When no snapshot exists or it
// cannot be read, the seed set is used and written back.
func NewTaskStore(ctx context.Context, repo task.Repository, log zerolog.Logger, opts ...StoreOption) *TaskStore {
	s := &TaskStore{
		repo:  repo,
		log:   logging.Sub(log, "task-store"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.tasks = tasks
		s.log.Debug().Int("tasks", len(tasks)).Msg("loaded task snapshot")
		return s
	case errors.Is(err, task.ErrNotFound):
		s.log.Info().Msg("no task snapshot, using seed set")
	default:
		s.log.Warn().Err(err).Msg("unreadable task snapshot, using seed set")
	}

	s.tasks = task.Seed(s.now(), s.newID)
	s.seeded = true
	if err := s.persist(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to write seed set")
	}

	return s
}

// Observe registers an observer for focus changes. The returned func
// removes it.
func (s *TaskStore) Observe(o FocusObserver) func() {
	s.observers = append(s.observers, o)

	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(x FocusObserver) bool {
			return x == o
		})
	}
}

// Seeded reports whether the store started from the seed set.
func (s *TaskStore) Seeded() bool {
	return s.seeded
}

// Tasks returns a copy of the collection in insertion order.
func (s *TaskStore) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id string) (task.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Current returns the focused task, if any.
func (s *TaskStore) Current() (task.Task, bool) {
	if s.current == nil {
		return task.Task{}, false
	}
	return *s.current, true
}

// Choices returns the choice pair for the current collection. It is
// recomputed on every call.
func (s *TaskStore) Choices() (task.Pair, bool) {
	return task.Choose(s.tasks)
}

// Add appends a new task built from d. The draft is not validated.
func (s *TaskStore) Add(ctx context.Context, d task.Draft) (task.Task, error) {
	t := task.Task{
		ID:        s.newID(),
		CreatedAt: s.now(),
	}.Apply(d)

	ctx = logging.WithTaskID(ctx, t.ID)
	s.tasks = append(s.tasks, t)
	s.log.Debug().Ctx(ctx).Msg("task added")

	return t, s.persist(ctx)
}

// Update replaces the stored task with the same id. If that task is focused
// the focus pointer is refreshed to the new value. Unknown ids are ignored.
func (s *TaskStore) Update(ctx context.Context, t task.Task) error {
	ctx = logging.WithTaskID(ctx, t.ID)
	i := s.indexOf(t.ID)
	if i < 0 {
		s.log.Debug().Ctx(ctx).Msg("update of unknown task ignored")
		return nil
	}

	s.tasks[i] = t
	if s.current != nil && s.current.ID == t.ID {
		s.setCurrent(&t)
	}

	return s.persist(ctx)
}

// Delete removes the task with the given id, clearing focus if it was the
// focused task. Unknown ids are ignored.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	ctx = logging.WithTaskID(ctx, id)
	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug().Ctx(ctx).Msg("delete of unknown task ignored")
		return nil
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	if s.current != nil && s.current.ID == id {
		s.setCurrent(nil)
	}

	return s.persist(ctx)
}

// SetCurrentTask focuses t, or clears focus when t is nil. Callers pass
// values obtained from the store or from Choices.
func (s *TaskStore) SetCurrentTask(t *task.Task) {
	if t != nil {
		cp := *t
		t = &cp
	}
	s.setCurrent(t)
}

// CompleteCurrent marks the focused task completed and clears focus.
// It does nothing when no task is focused.
func (s *TaskStore) CompleteCurrent(ctx context.Context) error {
	if s.current == nil {
		return nil
	}

	done := *s.current
	done.Completed = true

	err := s.Update(ctx, done)
	s.setCurrent(nil)
	return err
}

func (s *TaskStore) setCurrent(next *task.Task) {
	prev := s.current
	s.current = next

	for _, o := range s.observers {
		o.FocusChanged(prev, next)
	}
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.Tasks()); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Msg("failed to persist tasks")
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
