package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"items-api/models"
	"items-api/store"
	"items-api/store/memory"
	"items-api/store/storetest"
)

func newCachedStore(t *testing.T) (*Store, *memory.Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backing := memory.New()
	return New(backing, client, "items", time.Minute), backing, mr
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, _, _ := newCachedStore(t)
		return s
	})
}

func TestStore_GetFillsCache(t *testing.T) {
	ctx := context.Background()
	s, _, mr := newCachedStore(t)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)
	assert.False(t, mr.Exists("items:1"))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.True(t, mr.Exists("items:1"))
	assert.Equal(t, time.Minute, mr.TTL("items:1"))

	cached, err := mr.Get("items:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"item":"Pen","deskripsi":"Blue pen"}`, cached)
}

func TestStore_GetServedFromCache(t *testing.T) {
	ctx := context.Background()
	s, _, mr := newCachedStore(t)

	require.NoError(t, mr.Set("items:7", `{"id":7,"item":"Cached","deskripsi":"from redis"}`))

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Item)
	assert.Equal(t, "from redis", got.Description)
}

func TestStore_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	s, _, mr := newCachedStore(t)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)
	_, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("items:1"))

	_, err = s.Update(ctx, created.ID, "Pencil", "HB")
	require.NoError(t, err)
	assert.False(t, mr.Exists("items:1"))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pencil", got.Item)
}

func TestStore_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	s, _, mr := newCachedStore(t)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)
	_, err = s.Get(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("items:1"))

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_RedisDown(t *testing.T) {
	ctx := context.Background()
	s, _, mr := newCachedStore(t)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)

	mr.Close()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Update(ctx, created.ID, "Pencil", "HB")
	require.NoError(t, err)
}

// slowReadStore runs afterGet once, between loading an item and returning it.
type slowReadStore struct {
	store.Store
	afterGet func()
}

func (s *slowReadStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	it, err := s.Store.Get(ctx, id)
	if f := s.afterGet; f != nil {
		s.afterGet = nil
		f()
	}
	return it, err
}

func TestStore_MissRacingUpdateDoesNotCacheStale(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	backing := &slowReadStore{Store: memory.New()}
	s := New(backing, redis.NewClient(&redis.Options{Addr: mr.Addr()}), "items", time.Minute)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)

	backing.afterGet = func() {
		_, err := s.Update(ctx, created.ID, "Pencil", "HB")
		require.NoError(t, err)
	}

	stale, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", stale.Item)
	assert.False(t, mr.Exists("items:1"))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pencil", got.Item)
	assert.True(t, mr.Exists("items:1"))
}

func TestStore_MissRacingDeleteDoesNotCacheStale(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	backing := &slowReadStore{Store: memory.New()}
	s := New(backing, redis.NewClient(&redis.Options{Addr: mr.Addr()}), "items", time.Minute)

	created, err := s.Create(ctx, "Pen", "Blue pen")
	require.NoError(t, err)

	backing.afterGet = func() {
		_, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
	}

	_, err = s.Get(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
