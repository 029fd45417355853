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

import "errors"

var (
	// ErrContentRepositoryRequired is returned when a content repository is not provided.
	ErrContentRepositoryRequired = errors.New("content repository required")

	// ErrQueryCacheRequired is returned when a query cache is not provided.
	ErrQueryCacheRequired = errors.New("query cache required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned when the query is empty after normalization.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidTemporalFilter is returned when the temporal filter is neither
	// empty, "evergreen", nor a positive whole number of days.
	ErrInvalidTemporalFilter = errors.New("invalid temporal filter")

	// ErrEmbeddingFailed wraps embedding provider failures during search.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrMatchFailed wraps content store failures during similarity matching.
	ErrMatchFailed = errors.New("similarity match failed")
)
