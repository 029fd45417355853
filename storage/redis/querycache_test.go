package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/seeker/storage"
)

func newTestCache(t *testing.T, namespace string) *QueryCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewQueryCacheFromClient(client, namespace)
}

func TestQueryCache_GetMiss(t *testing.T) {
	cache := newTestCache(t, "")

	_, err := cache.Get(context.Background(), "never seen")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQueryCache_UpsertAndGet(t *testing.T) {
	cache := newTestCache(t, "")
	ctx := context.Background()
	vector := []float32{0.25, -0.5, 0.75}

	require.NoError(t, cache.Upsert(ctx, "pasta recipes", vector))

	entry, err := cache.Get(ctx, "pasta recipes")
	require.NoError(t, err)
	assert.Equal(t, "pasta recipes", entry.Query)
	assert.Equal(t, vector, entry.Vector)
	assert.False(t, entry.UpdatedAt.IsZero())
}

func TestQueryCache_UpsertReplaces(t *testing.T) {
	cache := newTestCache(t, "")
	ctx := context.Background()

	require.NoError(t, cache.Upsert(ctx, "pasta recipes", []float32{0.1}))
	require.NoError(t, cache.Upsert(ctx, "pasta recipes", []float32{0.9}))

	entry, err := cache.Get(ctx, "pasta recipes")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9}, entry.Vector)
}

func TestQueryCache_NamespaceIsolation(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	oldCache := NewQueryCacheFromClient(client, "model-a")
	newCache := NewQueryCacheFromClient(client, "model-b")

	require.NoError(t, oldCache.Upsert(ctx, "pasta recipes", []float32{0.1}))

	_, err := newCache.Get(ctx, "pasta recipes")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
