// Package sqlstore keeps items in the "produk" relational table through GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"items-api/models"
	"items-api/store"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to the database described by dialect and dsn.
func Open(dialect, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql dialect '%s'", dialect)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate creates or upgrades the items table. It runs once at startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Item{})
}

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, item, description string) (*models.Item, error) {
	it := &models.Item{
		Item:        item,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

func (s *Store) List(ctx context.Context) ([]*models.Item, error) {
	items := []*models.Item{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	return items, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Item, error) {
	return s.first(s.db.WithContext(ctx), id)
}

func (s *Store) Update(ctx context.Context, id int64, item, description string) (*models.Item, error) {
	db := s.db.WithContext(ctx)

	it, err := s.first(db, id)
	if err != nil {
		return nil, err
	}

	// A map is used so empty strings are written instead of skipped.
	err = db.Model(it).Updates(map[string]interface{}{
		"item":      item,
		"deskripsi": description,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	it.Item = item
	it.Description = description
	return it, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (*models.Item, error) {
	db := s.db.WithContext(ctx)

	it, err := s.first(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Item{}, id)
	if result.Error != nil {
		return nil, fmt.Errorf("delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return it, nil
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) first(db *gorm.DB, id int64) (*models.Item, error) {
	var it models.Item
	err := db.First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &it, nil
}
