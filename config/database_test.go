package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"items-api/store/cache"
	"items-api/store/memory"
	"items-api/store/sqlstore"
)

func TestOpenStore_Memory(t *testing.T) {
	c := Default()

	s, err := OpenStore(context.Background(), &c)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
}

func TestOpenStore_SQLite(t *testing.T) {
	c := Default()
	c.Store = StoreSQL
	c.SQLDSN = filepath.Join(t.TempDir(), "items.db")

	s, err := OpenStore(context.Background(), &c)
	require.NoError(t, err)
	defer s.Close(context.Background())
	assert.IsType(t, &sqlstore.Store{}, s)

	it, err := s.Create(context.Background(), "Pen", "Blue pen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), it.ID)
}

func TestOpenStore_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c := Default()
	c.RedisAddr = mr.Addr()

	s, err := OpenStore(context.Background(), &c)
	require.NoError(t, err)
	defer s.Close(context.Background())
	assert.IsType(t, &cache.Store{}, s)

	it, err := s.Create(context.Background(), "Pen", "Blue pen")
	require.NoError(t, err)
	_, err = s.Get(context.Background(), it.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("items:1"))
}

func TestOpenStore_Unknown(t *testing.T) {
	c := Default()
	c.Store = "cassandra"

	_, err := OpenStore(context.Background(), &c)
	assert.EqualError(t, err, "unknown store 'cassandra'")
}

func TestOpenStore_UnknownDialect(t *testing.T) {
	c := Default()
	c.Store = StoreSQL
	c.SQLDialect = "oracle"

	_, err := OpenStore(context.Background(), &c)
	assert.Error(t, err)
}
