package repository

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis connects to the Redis server at REDIS_ADDR (default
// localhost:6379), skipping the test when none is reachable.
func setupRedis(t *testing.T) *redis.Client {
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisRepository(t *testing.T) {
	client := setupRedis(t)
	key := "fabric-shop-test:" + t.Name()
	t.Cleanup(func() { client.Del(context.Background(), key) })

	exerciseRepository(t, NewRedisRepository(client, key, zerolog.Nop()))

	ttl, err := client.TTL(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), int64(ttl))
}

func TestRedisRepository_Corrupt(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	key := "fabric-shop-test:" + t.Name()
	t.Cleanup(func() { client.Del(ctx, key) })

	require.NoError(t, client.Set(ctx, key, "not json", 0).Err())

	_, err := NewRedisRepository(client, key, zerolog.Nop()).Load(ctx)
	assert.ErrorIs(t, err, ErrDocumentCorrupt)
}
