// Package mongostore stores items in a MongoDB collection keyed by an integer id.
//
// Ids are taken from a per-collection sequence document kept in the
// "counters" collection, so they keep growing after deletions.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"items-api/models"
	"items-api/store"
)

const countersCollection = "counters"

type Store struct {
	client   *mongo.Client
	items    *mongo.Collection
	counters *mongo.Collection
}

var _ store.Store = (*Store)(nil)

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func New(client *mongo.Client, database, collection string) *Store {
	db := client.Database(database)
	return &Store{
		client:   client,
		items:    db.Collection(collection),
		counters: db.Collection(countersCollection),
	}
}

func (s *Store) nextID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": s.items.Name()}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return c.Seq, nil
}

func (s *Store) Create(ctx context.Context, item, description string) (*models.Item, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	it := &models.Item{
		ID:          id,
		Item:        item,
		Description: description,
	}
	_, err = s.items.InsertOne(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

func (s *Store) List(ctx context.Context) ([]*models.Item, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.items.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*models.Item{}
	for cursor.Next(ctx) {
		var it models.Item
		if err := cursor.Decode(&it); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, &it)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.items.FindOne(ctx, bson.M{"_id": id}).Decode(&it)
	if err != nil {
		return nil, mapError("find item", err)
	}
	return &it, nil
}

func (s *Store) Update(ctx context.Context, id int64, item, description string) (*models.Item, error) {
	update := bson.M{"$set": bson.M{
		"item":      item,
		"deskripsi": description,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var it models.Item
	err := s.items.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&it)
	if err != nil {
		return nil, mapError("update item", err)
	}
	return &it, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.items.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&it)
	if err != nil {
		return nil, mapError("delete item", err)
	}
	return &it, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mapError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
