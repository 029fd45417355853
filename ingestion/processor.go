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
	"fmt"

	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/core"
)

// buildContentItem converts an extracted summary into a validated content
// item for the given submission. Tags that fail validation are dropped with
// a warning rather than failing the whole submission; the extractor is an
// LLM and the occasional malformed tag is expected.
func (p *Pipeline) buildContentItem(sub Submission, summary *ai.ExtractedSummary) (*core.ContentItem, error) {
	takeaways := summary.Takeaways
	if len(takeaways) > core.MaxTakeaways {
		takeaways = takeaways[:core.MaxTakeaways]
	}

	item := &core.ContentItem{
		Id:          core.IDFromContent(sub.ExternalRef),
		Title:       summary.Title,
		Category:    summary.Category,
		Takeaways:   takeaways,
		Tags:        p.convertTags(sub.ExternalRef, summary.Tags),
		PublishedAt: sub.PublishedAt,
	}

	if err := core.ValidateContentItem(item); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSummary, err)
	}
	return item, nil
}

func (p *Pipeline) convertTags(externalRef string, extracted []ai.ExtractedTag) []core.ContentTag {
	tags := make([]core.ContentTag, 0, len(extracted))
	for _, et := range extracted {
		tag := core.ContentTag{
			Slug:         et.Slug,
			Weight:       et.Weight,
			SegmentStart: et.SegmentStart,
			SegmentEnd:   et.SegmentEnd,
		}
		if err := core.ValidateContentTag(&tag); err != nil {
			p.logger.Warn("dropping invalid extracted tag",
				"external_ref", externalRef,
				"slug", et.Slug,
				"error", err)
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
