// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity, inclusive,
	// for an item to count as a match.
	DefaultSimilarityThreshold = 0.5

	// DefaultResultLimit is the maximum number of matches returned per search.
	DefaultResultLimit = 5

	// TemporalFilterEvergreen disables recency filtering, same as an empty filter.
	TemporalFilterEvergreen = "evergreen"

	defaultCacheUpsertTimeout = 5 * time.Second
)

// Searcher performs semantic similarity search over the content store.
// Query embeddings are cached so that repeat queries skip the embedding
// provider entirely.
type Searcher struct {
	content       storage.ContentRepository
	cache         storage.QueryCache
	embedder      ai.Embedder
	pool          *ants.Pool
	threshold     float32
	limit         int
	upsertTimeout time.Duration
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets the logger used by the searcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithThreshold overrides the minimum similarity for matches.
func WithThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		if threshold < -1 || threshold > 1 {
			return fmt.Errorf("threshold must be in [-1, 1], got %f", threshold)
		}
		s.threshold = threshold
		return nil
	}
}

// WithLimit overrides the maximum number of results returned.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return fmt.Errorf("limit must be positive, got %d", limit)
		}
		s.limit = limit
		return nil
	}
}

// WithPoolSize resizes the worker pool used for background cache writes.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size <= 0 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return fmt.Errorf("creating worker pool: %w", err)
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a Searcher over the given content repository, query
// cache, and embedding provider.
func NewSearcher(content storage.ContentRepository, cache storage.QueryCache, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if content == nil {
		return nil, ErrContentRepositoryRequired
	}
	if cache == nil {
		return nil, ErrQueryCacheRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	s := &Searcher{
		content:       content,
		cache:         cache,
		embedder:      provider.Embedder(),
		pool:          pool,
		threshold:     DefaultSimilarityThreshold,
		limit:         DefaultResultLimit,
		upsertTimeout: defaultCacheUpsertTimeout,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the searcher's worker pool. In-flight cache writes may be
// dropped; they are best-effort by design of the cache.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search embeds the query, filters the content store by similarity and
// recency, and returns up to the configured limit of matches ordered by
// descending similarity. temporalFilter is either empty, "evergreen", or a
// positive whole number of days restricting results to items published
// within that window. An empty result is not an error.
func (s *Searcher) Search(ctx context.Context, query string, temporalFilter string) ([]*core.SimilarityMatch, error) {
	return s.SearchWithMonitor(ctx, query, temporalFilter, &noopMonitor{})
}

// SearchWithMonitor is Search with observation hooks for each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, temporalFilter string, monitor SearchMonitor) ([]*core.SimilarityMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	normalized := Normalize(query)
	if normalized == "" {
		return nil, ErrEmptyQuery
	}

	publishedAfter, err := parseTemporalFilter(temporalFilter)
	if err != nil {
		return nil, err
	}

	monitor.Start(normalized)
	s.logger.Debug("starting search", "query", normalized, "temporal_filter", temporalFilter)

	vector, err := s.resolveQueryVector(ctx, normalized, monitor)
	if err != nil {
		return nil, err
	}

	matches, err := s.content.Match(ctx, storage.MatchRequest{
		Vector:         vector,
		Threshold:      s.threshold,
		Limit:          s.limit,
		PublishedAfter: publishedAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchFailed, err)
	}
	monitor.AfterMatch(matches)

	if matches == nil {
		matches = []*core.SimilarityMatch{}
	}

	s.logger.Debug("search complete", "query", normalized, "results", len(matches))
	monitor.Finish(matches)
	return matches, nil
}

// resolveQueryVector returns the embedding for a normalized query, consulting
// the cache first. On a miss the embedding provider is called and the result
// is written back to the cache asynchronously; a write that loses a race with
// a concurrent miss for the same query is harmless because both writers carry
// the embedding of identical text.
func (s *Searcher) resolveQueryVector(ctx context.Context, normalized string, monitor SearchMonitor) ([]float32, error) {
	entry, err := s.cache.Get(ctx, normalized)
	if err == nil {
		monitor.CacheHit(normalized)
		s.logger.Debug("query cache hit", "query", normalized)
		return entry.Vector, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		// A degraded cache must not fail the search.
		s.logger.Warn("query cache read failed, treating as miss", "query", normalized, "error", err)
	}
	monitor.CacheMiss(normalized)

	vector, err := s.embedder.EmbedText(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	s.scheduleCacheUpsert(normalized, vector)
	return vector, nil
}

func (s *Searcher) scheduleCacheUpsert(normalized string, vector []float32) {
	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.upsertTimeout)
		defer cancel()

		if err := s.cache.Upsert(ctx, normalized, vector); err != nil {
			s.logger.Warn("query cache upsert failed", "query", normalized, "error", err)
		}
	})
	if err != nil {
		s.logger.Warn("could not schedule query cache upsert", "query", normalized, "error", err)
	}
}

// parseTemporalFilter converts a temporal filter string into a publish-date
// cutoff. Empty and "evergreen" filters mean no cutoff and return the zero
// time.
func parseTemporalFilter(filter string) (time.Time, error) {
	if filter == "" || filter == TemporalFilterEvergreen {
		return time.Time{}, nil
	}
	days, err := strconv.Atoi(filter)
	if err != nil || days <= 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTemporalFilter, filter)
	}
	return time.Now().UTC().AddDate(0, 0, -days), nil
}
