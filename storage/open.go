package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go-pacha/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	redisKeyPrefix  = "pacha:device:"
	mongoCollection = "device_state"
)

// Open builds the Store selected by cfg.StoreDriver. The returned func
// releases any connection the store holds.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, func(), error) {
	switch cfg.StoreDriver {
	case "", "file":
		s, err := NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return s, func() {}, nil

	case "memory":
		return NewMemoryStore(), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
		return NewRedisStore(client, redisKeyPrefix), func() { client.Close() }, nil

	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("MongoDB connection failed: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		log.Println("Connected to MongoDB")
		collection := client.Database(cfg.MongoDatabase).Collection(mongoCollection)
		return NewMongoStore(collection), func() { client.Disconnect(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
