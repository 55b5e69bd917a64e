package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("container tests skipped in -short mode")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Could not construct docker pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Could not connect to docker: %s", err)
	}
	pool.MaxWait = 60 * time.Second
	return pool
}

func TestRedisStore(t *testing.T) {
	pool := dockerPool(t)
	resource, err := pool.Run("redis", "7", nil)
	if err != nil {
		t.Fatalf("Could not start redis: %s", err)
	}
	t.Cleanup(func() { pool.Purge(resource) })

	var client *redis.Client
	if err := pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))})
		return client.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("Could not connect to redis: %s", err)
	}
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "test:"))
}

func TestMongoStore(t *testing.T) {
	pool := dockerPool(t)
	resource, err := pool.Run("mongo", "7", nil)
	if err != nil {
		t.Fatalf("Could not start mongo: %s", err)
	}
	t.Cleanup(func() { pool.Purge(resource) })

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var err error
		uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))
		client, err = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		return client.Ping(context.Background(), nil)
	}); err != nil {
		t.Fatalf("Could not connect to mongo: %s", err)
	}
	defer client.Disconnect(context.Background())

	exerciseStore(t, NewMongoStore(client.Database("pacha_test").Collection("device_state")))
}
