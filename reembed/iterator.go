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


package reembed

import (
	"context"
	"time"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

const (
	// DefaultBatchSize is the default number of items to fetch in each batch
	DefaultBatchSize = 100
)

// ItemIterator iterates over all content items in batches.
type ItemIterator struct {
	repo      storage.ContentRepository
	batchSize int
}

// NewItemIterator creates a new content item iterator.
// batchSize: number of items to fetch in each batch (must be > 0)
func NewItemIterator(repo storage.ContentRepository, batchSize int) *ItemIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ItemIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Items fetches every content item in publication order. The sweep is
// open-ended on both sides so historical imports with pre-1970 dates are
// included.
func (it *ItemIterator) Items(ctx context.Context) ([]*core.ContentItem, error) {
	startTime := time.Time{}
	endTime := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return it.repo.GetContentItemsByDateRange(ctx, startTime, endTime)
}

// ForEach iterates over all content items, calling fn for each batch.
// Iteration stops on first error from fn or when all items are processed.
func (it *ItemIterator) ForEach(ctx context.Context, fn func([]*core.ContentItem) error) error {
	items, err := it.Items(ctx)
	if err != nil {
		return err
	}
	return it.ForEachBatch(ctx, items, fn)
}

// ForEachBatch slices an already fetched item list into batches and calls fn
// for each. Context cancellation is checked between batches.
func (it *ItemIterator) ForEachBatch(ctx context.Context, items []*core.ContentItem, fn func([]*core.ContentItem) error) error {
	if len(items) == 0 {
		return nil
	}

	for i := 0; i < len(items); i += it.batchSize {
		end := i + it.batchSize
		if end > len(items) {
			end = len(items)
		}

		if err := fn(items[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
