package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

// QueryCache implements storage.QueryCache on top of a Badger backend.
// Entries never expire; invalidation after an embedding model change is done
// by switching to a new namespace, leaving old entries unreferenced.
type QueryCache struct {
	backend   *Backend
	namespace string
}

var _ storage.QueryCache = (*QueryCache)(nil)

// NewQueryCache wraps an existing backend. The cache shares the backend's
// lifecycle; Close is a no-op so the owner can close the backend once.
func NewQueryCache(backend *Backend, namespace string) *QueryCache {
	return &QueryCache{backend: backend, namespace: namespace}
}

// Get retrieves the cached entry for a normalized query.
func (c *QueryCache) Get(ctx context.Context, query string) (*core.CacheEntry, error) {
	var result *core.CacheEntry
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeQueryCacheKey(c.namespace, query))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalCacheEntry(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// Upsert stores the embedding for a normalized query. Last write wins; a
// conflict from a concurrent writer is retried once since both writers carry
// equivalent data.
func (c *QueryCache) Upsert(ctx context.Context, query string, vector []float32) error {
	write := func() error {
		return c.backend.WithTx(func(tx *badger.Txn) error {
			entry := &core.CacheEntry{
				Query:     query,
				Vector:    vector,
				UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
			}
			if err := tx.Set(makeQueryCacheKey(c.namespace, query), storage.MarshalCacheEntry(entry)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
	}

	err := write()
	if err == badger.ErrConflict {
		err = write()
	}
	return err
}

// Close is a no-op; the backend owner closes the database.
func (c *QueryCache) Close() error {
	return nil
}
