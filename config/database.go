package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"items-api/store"
	"items-api/store/cache"
	"items-api/store/memory"
	"items-api/store/mongostore"
	"items-api/store/sqlstore"
)

const connectTimeout = 10 * time.Second

// OpenStore builds the record store selected by c, wrapped with the Redis
// cache when RedisAddr is set.
func OpenStore(ctx context.Context, c *Configuration) (store.Store, error) {
	var s store.Store

	switch c.Store {
	case StoreMemory:
		s = memory.New()
		log.Println("Using in-memory store")
	case StoreMongo:
		client, err := ConnectMongoDB(ctx, c.MongoURI)
		if err != nil {
			return nil, err
		}
		s = mongostore.New(client, c.MongoDatabase, c.MongoCollection)
	case StoreSQL:
		db, err := sqlstore.Open(c.SQLDialect, c.SQLDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", c.SQLDialect, err)
		}
		if err := sqlstore.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate %s database: %w", c.SQLDialect, err)
		}
		log.Printf("Connected to %s!", c.SQLDialect)
		s = sqlstore.New(db)
	default:
		return nil, fmt.Errorf("unknown store '%s'", c.Store)
	}

	if c.RedisAddr == "" {
		return s, nil
	}

	client, err := ConnectRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}
	ttl := time.Duration(c.CacheTTLSeconds) * time.Second
	return cache.New(s, client, c.Resource, ttl), nil
}

func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Println("Connected to MongoDB!")
	return client, nil
}

func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis!")
	return client, nil
}
