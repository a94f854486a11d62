package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// setupTestRedis creates a miniredis instance and a redis client for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, rdb := setupTestRedis(t)
	store := NewRedisStore(rdb, "interview")
	ctx := context.Background()

	err := store.Set(ctx, "sessions", []byte(`[{"id":"s-1"}]`))
	assert.NoError(t, err)

	got, err := store.Get(ctx, "sessions")
	assert.NoError(t, err)
	assert.Equal(t, `[{"id":"s-1"}]`, string(got))
}

func TestRedisStoreMissIsNilNil(t *testing.T) {
	_, rdb := setupTestRedis(t)
	store := NewRedisStore(rdb, "interview")

	got, err := store.Get(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	store := NewRedisStore(rdb, "interview")

	err := store.Set(context.Background(), "sessions", []byte("data"))
	assert.NoError(t, err)

	val, err := mr.Get("interview:sessions")
	assert.NoError(t, err)
	assert.Equal(t, "data", val)
}

func TestRedisStoreDelete(t *testing.T) {
	_, rdb := setupTestRedis(t)
	store := NewRedisStore(rdb, "interview")
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", []byte("v")))
	assert.NoError(t, store.Delete(ctx, "k"))

	got, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreErrorIsPersistenceError(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	store := NewRedisStore(rdb, "interview")
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)

	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "get", perr.Op)
	assert.Equal(t, "k", perr.Key)
}
