package stores

import (
	"context"
	"testing"

	"github.com/hay-kot/focusflow/internal/core/kv"
	"github.com/hay-kot/focusflow/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVStore(t *testing.T) *KVStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewKVStore(database)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		store := newTestKVStore(t)

		require.NoError(t, store.Set(ctx, "greeting", "hello"))

		var got string
		require.NoError(t, store.Get(ctx, "greeting", &got))
		assert.Equal(t, "hello", got)
	})

	t.Run("get missing", func(t *testing.T) {
		store := newTestKVStore(t)

		var got string
		err := store.Get(ctx, "missing", &got)
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("overwrite keeps created_at", func(t *testing.T) {
		store := newTestKVStore(t)

		require.NoError(t, store.Set(ctx, "k", 1))
		first, err := store.GetRaw(ctx, "k")
		require.NoError(t, err)

		require.NoError(t, store.Set(ctx, "k", 2))
		second, err := store.GetRaw(ctx, "k")
		require.NoError(t, err)

		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
		assert.JSONEq(t, "2", string(second.Value))
	})

	t.Run("has and delete", func(t *testing.T) {
		store := newTestKVStore(t)

		has, err := store.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, store.Set(ctx, "k", true))
		has, err = store.Has(ctx, "k")
		require.NoError(t, err)
		assert.True(t, has)

		require.NoError(t, store.Delete(ctx, "k"))
		has, err = store.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("list keys sorted", func(t *testing.T) {
		store := newTestKVStore(t)

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)

		require.NoError(t, store.Set(ctx, "b", 1))
		require.NoError(t, store.Set(ctx, "a", 1))

		keys, err = store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)
	})
}
