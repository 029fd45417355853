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


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

const defaultEmbedTimeout = 60 * time.Second

// Submission is one unit of raw content handed to the pipeline.
type Submission struct {
	// ExternalRef identifies the source document. The content item's ID is
	// derived from it, so re-submitting the same reference replaces the
	// earlier record.
	ExternalRef string

	// RawText is the full source text. It is summarized, never embedded.
	RawText string

	// PublishedAt is the source's publication time, used by recency filters.
	PublishedAt time.Time
}

// Pipeline ingests submissions: extract a summary, store the content item,
// and embed its canonical text in the background.
type Pipeline struct {
	content   storage.ContentRepository
	extractor ai.SummaryExtractor
	embedder  ai.Embedder
	pool      *ants.Pool
	pending   sync.WaitGroup
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the logger used by the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		p.logger = logger
		return nil
	}
}

// WithPoolSize resizes the worker pool used for background embedding.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size <= 0 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return fmt.Errorf("creating worker pool: %w", err)
		}
		p.pool = pool
		return nil
	}
}

// WithEmbedTimeout sets the per-item timeout for background embedding.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout <= 0 {
			return fmt.Errorf("embed timeout must be positive, got %v", timeout)
		}
		p.timeout = timeout
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given content
// repository and AI provider.
func NewPipeline(content storage.ContentRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if content == nil {
		return nil, ErrContentRepositoryRequired
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

	p := &Pipeline{
		content:   content,
		extractor: provider.SummaryExtractor(),
		embedder:  provider.Embedder(),
		pool:      pool,
		timeout:   defaultEmbedTimeout,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.pool.Release()
			return nil, err
		}
	}

	return p, nil
}

// Ingest runs a submission through extraction and storage, then schedules
// background embedding of the item's canonical text. The returned item has
// timestamps populated but no vector yet; the item becomes matchable once
// the background embedding lands.
func (p *Pipeline) Ingest(ctx context.Context, sub Submission) (*core.ContentItem, error) {
	if sub.ExternalRef == "" {
		return nil, ErrEmptyExternalRef
	}
	if sub.RawText == "" {
		return nil, ErrEmptyRawText
	}

	p.logger.Debug("ingesting submission", "external_ref", sub.ExternalRef)

	summary, err := p.extractor.ExtractSummary(ctx, sub.RawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	item, err := p.buildContentItem(sub, summary)
	if err != nil {
		return nil, err
	}

	stored, err := p.content.UpsertContentItems(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	p.scheduleEmbedding(stored[0].Id)

	p.logger.Info("submission ingested",
		"external_ref", sub.ExternalRef,
		"id", stored[0].Id,
		"title", stored[0].Title)
	return stored[0], nil
}

// Wait blocks until all scheduled background embeddings have completed.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for pending embeddings and frees the worker pool.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) scheduleEmbedding(id core.ID) {
	p.pending.Add(1)
	err := p.pool.Submit(func() {
		defer p.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.embedContentItem(ctx, id); err != nil {
			p.logger.Error("background embedding failed", "id", id, "error", err)
		}
	})
	if err != nil {
		p.pending.Done()
		p.logger.Error("could not schedule embedding", "id", id, "error", err)
	}
}
