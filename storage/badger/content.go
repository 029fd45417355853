package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
type ContentRepository struct {
	backend *Backend
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a ContentRepository on an existing backend.
// The repository shares the backend's lifecycle.
func NewContentRepository(backend *Backend) (*ContentRepository, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	return newContentRepository(backend), nil
}

// newContentRepository wraps an existing backend.
func newContentRepository(backend *Backend) *ContentRepository {
	return &ContentRepository{backend: backend}
}

// Close closes the underlying database.
func (r *ContentRepository) Close() error {
	return r.backend.Close()
}

// Match delegates to the backend.
func (r *ContentRepository) Match(ctx context.Context, req storage.MatchRequest) ([]*core.SimilarityMatch, error) {
	return r.backend.Match(ctx, req)
}

// WithTransaction delegates to the backend.
func (r *ContentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertContentItems inserts or replaces content items. IDs are content-based
// and supplied by the caller, so an existing record with the same ID is
// replaced while its InsertedAt is preserved.
func (r *ContentRepository) UpsertContentItems(ctx context.Context, items ...*core.ContentItem) ([]*core.ContentItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Microsecond precision matches what the serialized form keeps, so
		// returned items compare equal to what a later read produces.
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, item := range items {
			key := makeContentItemKey(item.Id)

			old, err := r.readContentItem(tx, key)
			if err != nil {
				return err
			}

			if old == nil {
				item.InsertedAt = now
			} else {
				item.InsertedAt = old.InsertedAt
			}
			item.UpdatedAt = now

			value := storage.MarshalContentItem(item)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Maintain the publication date index
			if old != nil && !old.PublishedAt.Equal(item.PublishedAt) {
				oldDateKey := makeContentDateKey(old.PublishedAt, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
			}
			dateKey := makeContentDateKey(item.PublishedAt, item.Id)
			if err := tx.Set(dateKey, storage.MarshalID(item.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// GetContentItem retrieves a single content item by ID.
func (r *ContentRepository) GetContentItem(ctx context.Context, id core.ID) (*core.ContentItem, error) {
	var result *core.ContentItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeContentItemKey(id)
		var err error
		result, err = r.readContentItem(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetContentItems retrieves multiple content items by their IDs.
func (r *ContentRepository) GetContentItems(ctx context.Context, ids ...core.ID) ([]*core.ContentItem, error) {
	var result []*core.ContentItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeContentItemKey(id)
			item, err := r.readContentItem(tx, key)
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetContentItemsByDateRange retrieves items published within a time range.
func (r *ContentRepository) GetContentItemsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ContentItem, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.ContentItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialContentDateKey(start)
		endKey := makePartialContentDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var itemID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				itemID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			itemKey := makeContentItemKey(itemID)
			item, err := r.readContentItem(tx, itemKey)
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)

	return results, err
}

// readContentItem reads a content item from the transaction.
func (r *ContentRepository) readContentItem(tx *badger.Txn, key []byte) (*core.ContentItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ContentItem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalContentItem(val)
		return unmarshalErr
	})
	return record, err
}
