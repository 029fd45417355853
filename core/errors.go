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

import "errors"

// Domain validation errors
var (
	// ErrInvalidContentItem indicates a ContentItem failed validation.
	ErrInvalidContentItem = errors.New("invalid content item")

	// ErrInvalidContentTag indicates a ContentTag failed validation.
	ErrInvalidContentTag = errors.New("invalid content tag")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyCategory indicates the Category field is empty.
	ErrEmptyCategory = errors.New("category cannot be empty")

	// ErrTooManyTakeaways indicates more takeaways than MaxTakeaways.
	ErrTooManyTakeaways = errors.New("too many takeaways")

	// ErrEmptyTagSlug indicates a tag Slug field is empty.
	ErrEmptyTagSlug = errors.New("tag slug cannot be empty")

	// ErrTagSlugNotLowercase indicates a tag slug contains uppercase characters.
	ErrTagSlugNotLowercase = errors.New("tag slug must be lowercase")

	// ErrInvalidTagWeight indicates a tag weight outside [1, 10].
	ErrInvalidTagWeight = errors.New("tag weight must be between 1 and 10")

	// ErrInvalidTagSegment indicates a segment range outside [0, 100] or inverted.
	ErrInvalidTagSegment = errors.New("invalid tag segment range")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
