// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"items-api/store"
)

// Run exercises a fresh store returned by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()

	t.Run("create assigns unique positive ids", func(t *testing.T) {
		s := newStore(t)
		seen := map[int64]bool{}
		for i := 0; i < 5; i++ {
			it, err := s.Create(ctx, "Pen", "Blue pen")
			require.NoError(t, err)
			assert.Greater(t, it.ID, int64(0))
			assert.False(t, seen[it.ID], "id %d reused", it.ID)
			seen[it.ID] = true
			assert.Equal(t, "Pen", it.Item)
			assert.Equal(t, "Blue pen", it.Description)
		}
	})

	t.Run("list keeps creation order", func(t *testing.T) {
		s := newStore(t)
		names := []string{"Pen", "Pencil", "Eraser", "Ruler"}
		for _, n := range names {
			_, err := s.Create(ctx, n, n+" description")
			require.NoError(t, err)
		}

		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, len(names))
		for i, it := range items {
			assert.Equal(t, names[i], it.Item)
		}
	})

	t.Run("list of empty store", func(t *testing.T) {
		s := newStore(t)
		items, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		_, err = s.Get(ctx, created.ID+100)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update keeps id", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, "Pencil", "HB")
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Pencil", updated.Item)
		assert.Equal(t, "HB", updated.Description)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("update accepts empty fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, "", "")
		require.NoError(t, err)
		assert.Equal(t, "", updated.Item)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("update missing leaves store untouched", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID+1, "Pencil", "HB")
		assert.ErrorIs(t, err, store.ErrNotFound)

		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, created, items[0])
	})

	t.Run("delete removes exactly one item", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)
		second, err := s.Create(ctx, "Pencil", "HB")
		require.NoError(t, err)

		removed, err := s.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, removed)

		_, err = s.Get(ctx, first.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, second, items[0])
	})

	t.Run("delete twice reports not found", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)

		_, err = s.Delete(ctx, created.ID)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = s.Delete(ctx, created.ID)
			assert.ErrorIs(t, err, store.ErrNotFound)
		}

		items, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, "Pen", "Blue pen")
		require.NoError(t, err)
		last, err := s.Create(ctx, "Pencil", "HB")
		require.NoError(t, err)

		_, err = s.Delete(ctx, last.ID)
		require.NoError(t, err)

		next, err := s.Create(ctx, "Eraser", "White")
		require.NoError(t, err)
		assert.Greater(t, next.ID, last.ID)
	})
}
