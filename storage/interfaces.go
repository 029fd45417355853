package storage

import (
	"context"
	"time"

	"github.com/poiesic/seeker/core"
)

// MatchRequest describes a similarity search against the content index.
type MatchRequest struct {
	// Vector is the query embedding.
	Vector []float32

	// Threshold is the minimum cosine similarity, inclusive. Items scoring
	// exactly Threshold are returned.
	Threshold float32

	// Limit caps the number of matches returned.
	Limit int

	// PublishedAfter, when non-zero, restricts matches to items with
	// PublishedAt >= PublishedAfter.
	PublishedAfter time.Time
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ContentRepository provides operations for managing indexed content items.
type ContentRepository interface {
	Repository
	// UpsertContentItems inserts or replaces one or more content items.
	// Items use content-based IDs (IDFromContent of an external reference),
	// so re-ingesting the same source replaces its record. Sets InsertedAt
	// on first insert and UpdatedAt on every write.
	// Returns the items with timestamps populated.
	UpsertContentItems(ctx context.Context, items ...*core.ContentItem) ([]*core.ContentItem, error)

	// GetContentItem retrieves a single content item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetContentItem(ctx context.Context, id core.ID) (*core.ContentItem, error)

	// GetContentItems retrieves multiple content items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetContentItems(ctx context.Context, ids ...core.ID) ([]*core.ContentItem, error)

	// GetContentItemsByDateRange retrieves items within a publication range.
	// Returns items where start <= PublishedAt < end, ordered by PublishedAt.
	GetContentItemsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ContentItem, error)

	// Match finds content items similar to the request vector.
	// Returns items with similarity >= req.Threshold, up to req.Limit
	// results, ordered by similarity (highest first, ties by ascending ID).
	// Items without vectors are never matched. An empty result is not an
	// error.
	Match(ctx context.Context, req MatchRequest) ([]*core.SimilarityMatch, error)
}

// QueryCache persists query embeddings keyed by normalized query text.
// Entries are upsert-only; implementations never expire or delete them.
type QueryCache interface {
	// Get retrieves the cached entry for a normalized query.
	// Returns ErrNotFound on a cache miss.
	Get(ctx context.Context, query string) (*core.CacheEntry, error)

	// Upsert stores the embedding for a normalized query, replacing any
	// existing entry. Concurrent upserts for the same query are safe; the
	// store converges to a single entry (last write wins).
	Upsert(ctx context.Context, query string, vector []float32) error

	// Close releases resources held by the cache.
	Close() error
}
