// Package store defines the record store contract shared by every backend.
package store

import (
	"context"
	"errors"

	"items-api/models"
)

// ErrNotFound is returned when no item carries the requested id.
var ErrNotFound = errors.New("item not found")

// Store holds items, assigns their ids and applies updates and removals.
//
// Ids are strictly positive and never reused within the lifetime of a store.
// List returns items in creation order.
type Store interface {
	Create(ctx context.Context, item, description string) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Update(ctx context.Context, id int64, item, description string) (*models.Item, error)
	Delete(ctx context.Context, id int64) (*models.Item, error)
	Close(ctx context.Context) error
}
