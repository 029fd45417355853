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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateContentItem validates a ContentItem according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Category must not be empty
//   - Takeaways must not exceed MaxTakeaways
//   - Every tag must pass ValidateContentTag
//   - InsertedAt must not be in the future
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedding processor runs)
//   - Id (0 is a legal hash value)
//   - PublishedAt (historical imports carry arbitrary dates)
func ValidateContentItem(item *ContentItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidContentItem)
	}

	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContentItem, ErrEmptyTitle)
	}

	if item.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContentItem, ErrEmptyCategory)
	}

	if len(item.Takeaways) > MaxTakeaways {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidContentItem, ErrTooManyTakeaways, len(item.Takeaways))
	}

	for i := range item.Tags {
		if err := ValidateContentTag(&item.Tags[i]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidContentItem, err)
		}
	}

	if !item.InsertedAt.IsZero() && !IsValidTimestamp(item.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidContentItem, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateContentTag validates a ContentTag according to domain rules.
//
// Validation rules:
//   - Slug must be non-empty and lowercase
//   - Weight must be in [1, 10]
//   - SegmentStart and SegmentEnd must be in [0, 100] with start <= end
func ValidateContentTag(tag *ContentTag) error {
	if tag == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidContentTag)
	}

	if tag.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContentTag, ErrEmptyTagSlug)
	}

	if tag.Slug != strings.ToLower(tag.Slug) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidContentTag, ErrTagSlugNotLowercase, tag.Slug)
	}

	if tag.Weight < 1 || tag.Weight > 10 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidContentTag, ErrInvalidTagWeight, tag.Weight)
	}

	if tag.SegmentStart < 0 || tag.SegmentEnd > 100 || tag.SegmentStart > tag.SegmentEnd {
		return fmt.Errorf("%w: %w: [%d, %d]", ErrInvalidContentTag, ErrInvalidTagSegment, tag.SegmentStart, tag.SegmentEnd)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
