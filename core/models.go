package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of a stable external reference.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, so re-ingesting the
// same source yields an upsert rather than a duplicate.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentTag is a weighted topic label with a segment range describing which
// portion of the item's runtime discusses that topic. Segment ranges of
// different tags may overlap; weights are not required to be unique.
type ContentTag struct {
	Slug         string // lowercase slug, e.g. "italian_food"
	Weight       int    // 1-10
	SegmentStart int    // 0-100, percent of runtime
	SegmentEnd   int    // 0-100, percent of runtime
}

// ContentItem represents an indexed piece of content.
//
// Vector MUST be derived exclusively from the canonical text built out of
// Title, Category, Takeaways, and tag slugs (see CanonicalText), never from
// the raw source text the summary was extracted from. That boundary is what
// keeps keyword-stuffed transcripts out of the similarity index.
type ContentItem struct {
	Id          ID
	Title       string
	Category    string
	Takeaways   []string // up to MaxTakeaways short statements
	Tags        []ContentTag
	Vector      []float32 // embedding of CanonicalText (populated by processors)
	PublishedAt time.Time // when the content was originally published
	InsertedAt  time.Time // when the item was inserted into the database
	UpdatedAt   time.Time // when the item was last updated
}

// CacheEntry is a persisted query-cache row mapping a normalized query to its
// embedding. Entries are upsert-only and carry no expiry.
type CacheEntry struct {
	Query     string
	Vector    []float32
	UpdatedAt time.Time
}

// SimilarityMatch represents a content item matched by vector similarity search.
// Produced fresh per query, never persisted.
type SimilarityMatch struct {
	Item       *ContentItem
	Similarity float32
}
