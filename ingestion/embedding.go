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
	"fmt"

	"github.com/poiesic/seeker/core"
)

// embedContentItem reads the stored item, embeds its canonical text, and
// writes the vector back. The record is re-read rather than captured at
// schedule time so that a replacement landing between ingest and embed wins.
// The submission's raw text is out of reach here on purpose: the vector can
// only ever describe the canonical summary.
func (p *Pipeline) embedContentItem(ctx context.Context, id core.ID) error {
	item, err := p.content.GetContentItem(ctx, id)
	if err != nil {
		return fmt.Errorf("reading item for embedding: %w", err)
	}

	vector, err := p.embedder.EmbedText(ctx, item.CanonicalText())
	if err != nil {
		return fmt.Errorf("embedding canonical text: %w", err)
	}

	item.Vector = vector
	if _, err := p.content.UpsertContentItems(ctx, item); err != nil {
		return fmt.Errorf("storing embedded item: %w", err)
	}

	p.logger.Debug("content item embedded", "id", id, "dimension", len(vector))
	return nil
}
