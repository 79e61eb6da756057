// Package memory keeps items in a process-local ordered list.
package memory

import (
	"context"
	"sync"

	"items-api/models"
	"items-api/store"
)

type Store struct {
	mu     sync.RWMutex
	items  []*models.Item
	lastID int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Create(ctx context.Context, item, description string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	it := &models.Item{
		ID:          s.lastID,
		Item:        item,
		Description: description,
	}
	s.items = append(s.items, it)

	return clone(it), nil
}

func (s *Store) List(ctx context.Context) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Item, 0, len(s.items))
	for _, it := range s.items {
		result = append(result, clone(it))
	}
	return result, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.items[i]), nil
}

func (s *Store) Update(ctx context.Context, id int64, item, description string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	s.items[i].Item = item
	s.items[i].Description = description

	return clone(s.items[i]), nil
}

func (s *Store) Delete(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)

	return removed, nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func clone(it *models.Item) *models.Item {
	c := *it
	return &c
}
