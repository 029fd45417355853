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


package seeker

import (
	"io"
	"log/slog"

	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/ai/openai"
	"github.com/poiesic/seeker/ingestion"
	"github.com/poiesic/seeker/reembed"
	"github.com/poiesic/seeker/search"
	"github.com/poiesic/seeker/storage"
	"github.com/poiesic/seeker/storage/badger"
)

// Database bundles the storage backend, repositories, and AI provider behind
// one lifecycle.
type Database struct {
	backend     *badger.Backend
	contentRepo storage.ContentRepository
	queryCache  storage.QueryCache
	provider    ai.AIProvider
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	queryCache     storage.QueryCache
	cacheNamespace string
	inMemory       bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects an already-constructed AI provider, bypassing the
// default OpenAI-compatible provider. Useful for tests.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithQueryCache substitutes an external query cache, for example a shared
// Redis cache, in place of the embedded Badger-backed one.
func WithQueryCache(cache storage.QueryCache) DatabaseOption {
	return func(o *databaseOptions) {
		o.queryCache = cache
	}
}

// WithCacheNamespace sets the namespace for the embedded query cache.
// Rotate the namespace when the embedding model changes so stale query
// vectors are never matched against freshly embedded content.
func WithCacheNamespace(namespace string) DatabaseOption {
	return func(o *databaseOptions) {
		o.cacheNamespace = namespace
	}
}

// WithInMemory opens a transient in-memory store instead of one on disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens a database at filePath with the configured AI services.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	contentRepo, err := badger.NewContentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	queryCache := options.queryCache
	if queryCache == nil {
		queryCache = badger.NewQueryCache(backend, options.cacheNamespace)
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:     backend,
		contentRepo: contentRepo,
		queryCache:  queryCache,
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

// Close releases the AI provider, cache, and storage backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.queryCache.Close(); err != nil {
		db.logger.Error("error closing query cache", "err", err)
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ContentRepository() storage.ContentRepository {
	return db.contentRepo
}

func (db *Database) QueryCache() storage.QueryCache {
	return db.queryCache
}

func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.contentRepo, db.queryCache, db.provider, opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.contentRepo, db.provider, opts...)
}

// NewReembedder creates a reembedder over every stored content item.
// progress is where progress output is written, typically os.Stderr.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.contentRepo, db.provider.Embedder(), config, progress)
}
