// Package cache puts a Redis read-through cache in front of a store.Store.
//
// Only Get is served from the cache. Update and Delete invalidate the cached
// entry after the backing store has applied the change and bump a per-id
// generation; a cache miss only fills the entry if the generation it saw
// before reading the store is still current. Redis failures are logged and
// never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"items-api/models"
	"items-api/store"
)

const DefaultTTL = 5 * time.Minute

type Store struct {
	store.Store
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*Store)(nil)

// New wraps next. Keys are "<prefix>:<id>".
func New(next store.Store, client *redis.Client, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		Store:  next,
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(id int64) string {
	return s.prefix + ":" + strconv.FormatInt(id, 10)
}

// genKey has no TTL: an expired generation could match a stale read.
func (s *Store) genKey(id int64) string {
	return s.prefix + ":gen:" + strconv.FormatInt(id, 10)
}

func (s *Store) generation(ctx context.Context, id int64) (int64, error) {
	gen, err := s.redis.Get(ctx, s.genKey(id)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// fill writes it under key unless an invalidation happened since gen was read.
func (s *Store) fill(ctx context.Context, id, gen int64, it *models.Item) {
	key := s.key(id)
	genKey := s.genKey(id)
	jsonItem, _ := json.Marshal(it)

	err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonItem, s.ttl)
			return nil
		})
		return err
	}, genKey)
	if err != nil && err != redis.TxFailedErr {
		log.Printf("ERROR: cache: set %s: %v", key, err)
	}
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Item, error) {
	key := s.key(id)

	val, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		var it models.Item
		if err := json.Unmarshal([]byte(val), &it); err == nil {
			return &it, nil
		}
		log.Printf("ERROR: cache: corrupt entry %s", key)
	} else if err != redis.Nil {
		log.Printf("ERROR: cache: get %s: %v", key, err)
	}

	gen, genErr := s.generation(ctx, id)

	it, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		log.Printf("ERROR: cache: generation %s: %v", key, genErr)
		return it, nil
	}
	s.fill(ctx, id, gen, it)

	return it, nil
}

func (s *Store) Update(ctx context.Context, id int64, item, description string) (*models.Item, error) {
	it, err := s.Store.Update(ctx, id, item, description)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return it, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (*models.Item, error) {
	it, err := s.Store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return it, nil
}

func (s *Store) Close(ctx context.Context) error {
	err := s.Store.Close(ctx)
	if closeErr := s.redis.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (s *Store) invalidate(ctx context.Context, id int64) {
	key := s.key(id)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, s.genKey(id))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		log.Printf("ERROR: cache: invalidate %s: %v", key, err)
	}
}
