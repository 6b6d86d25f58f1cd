package stores

import (
	"context"
	"testing"
	"time"

	"github.com/hay-kot/focusflow/internal/core/kv"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []task.Task {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: "a", Title: "Write tests", Priority: task.PriorityHigh, TimeAllocation: 30, CreatedAt: created},
		{ID: "b", Title: "Lunch", Description: "sandwich", Priority: task.PriorityLow, TimeAllocation: 45, Completed: true, CreatedAt: created},
	}
}

func TestTaskRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save", func(t *testing.T) {
		repo := NewTaskRepository(newTestKVStore(t), "")

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, task.ErrNotFound)
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		repo := NewTaskRepository(newTestKVStore(t), "")

		require.NoError(t, repo.Save(ctx, sampleTasks()))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleTasks(), got)
	})

	t.Run("empty collection is a snapshot", func(t *testing.T) {
		repo := NewTaskRepository(newTestKVStore(t), "")

		require.NoError(t, repo.Save(ctx, nil))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed data", func(t *testing.T) {
		store := newTestKVStore(t)
		repo := NewTaskRepository(store, "")

		require.NoError(t, store.setRaw(ctx, Namespace+":"+DefaultTaskKey, []byte(`[{"id":`)))

		_, err := repo.Load(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, task.ErrNotFound)
	})

	t.Run("custom key", func(t *testing.T) {
		store := newTestKVStore(t)
		repo := NewTaskRepository(store, "work")

		require.NoError(t, repo.Save(ctx, sampleTasks()))

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"focusflow:work"}, keys)
	})
}

func TestTaskRepository_Memory(t *testing.T) {
	ctx := context.Background()

	t.Run("null snapshot is malformed", func(t *testing.T) {
		mem := kv.NewMemory()
		mem.SetRaw("focusflow:tasks", []byte("null"))

		_, err := NewTaskRepository(mem, "").Load(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, task.ErrNotFound)
	})

	t.Run("unknown priority is malformed", func(t *testing.T) {
		mem := kv.NewMemory()
		mem.SetRaw("focusflow:tasks", []byte(`[{"id":"x","title":"t","priority":"urgent","timeAllocation":5}]`))

		_, err := NewTaskRepository(mem, "").Load(ctx)
		assert.Error(t, err)
	})
}
