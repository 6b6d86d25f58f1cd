// Package jsonfile implements persistence ports on top of plain JSON files.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/focusflow/internal/core/task"
)

// FileName is the default snapshot file inside the data directory.
const FileName = "tasks.json"

// TaskStore implements task.Repository using a JSON file holding an array
// of task records.
type TaskStore struct {
	path string
	mu   sync.Mutex
}

var _ task.Repository = (*TaskStore)(nil)

// NewTaskStore creates a JSON file task repository at the given path.
func NewTaskStore(path string) *TaskStore {
	return &TaskStore{path: path}
}

// Path returns the snapshot file location.
func (s *TaskStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing or empty file is task.ErrNotFound.
func (s *TaskStore) Load(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, task.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return nil, task.ErrNotFound
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if tasks == nil {
		return nil, fmt.Errorf("decode %s: snapshot is null", s.path)
	}

	return tasks, nil
}

// Save writes the snapshot atomically.
func (s *TaskStore) Save(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks == nil {
		tasks = []task.Task{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
