// Package redis provides a storage.QueryCache backed by Redis, for
// deployments where several search instances share one query cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

const keyPrefix = "seeker:qcache"

// QueryCache implements storage.QueryCache on a Redis client. Entries are
// stored as JSON with no expiry; invalidation after an embedding model change
// uses namespace rotation, the same scheme as the Badger cache.
type QueryCache struct {
	client    *redis.Client
	namespace string
}

var _ storage.QueryCache = (*QueryCache)(nil)

// NewQueryCache connects to Redis at addr and verifies the connection.
func NewQueryCache(ctx context.Context, addr, namespace string) (*QueryCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &QueryCache{client: client, namespace: namespace}, nil
}

// NewQueryCacheFromClient wraps an existing client. The caller retains
// ownership of the client; Close still closes it.
func NewQueryCacheFromClient(client *redis.Client, namespace string) *QueryCache {
	return &QueryCache{client: client, namespace: namespace}
}

// Get retrieves the cached entry for a normalized query.
func (c *QueryCache) Get(ctx context.Context, query string) (*core.CacheEntry, error) {
	data, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var entry core.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return &entry, nil
}

// Upsert stores the embedding for a normalized query. SET is atomic, so
// concurrent writers for one key converge to the last write.
func (c *QueryCache) Upsert(ctx context.Context, query string, vector []float32) error {
	entry := core.CacheEntry{
		Query:     query,
		Vector:    vector,
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return c.client.Set(ctx, c.key(query), data, 0).Err()
}

// Close closes the underlying Redis client.
func (c *QueryCache) Close() error {
	return c.client.Close()
}

func (c *QueryCache) key(query string) string {
	if c.namespace == "" {
		return fmt.Sprintf("%s:%s", keyPrefix, query)
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, c.namespace, query)
}
