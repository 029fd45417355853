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

import "errors"

var (
	// ErrContentRepositoryRequired is returned when a content repository is not provided.
	ErrContentRepositoryRequired = errors.New("content repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyExternalRef is returned when a submission has no external reference.
	ErrEmptyExternalRef = errors.New("submission external reference cannot be empty")

	// ErrEmptyRawText is returned when a submission has no text to ingest.
	ErrEmptyRawText = errors.New("submission raw text cannot be empty")

	// ErrExtractionFailed wraps summary extraction failures.
	ErrExtractionFailed = errors.New("summary extraction failed")

	// ErrInvalidSummary is returned when the extracted summary cannot form a
	// valid content item.
	ErrInvalidSummary = errors.New("extracted summary is invalid")

	// ErrStoreFailed wraps content repository failures during ingestion.
	ErrStoreFailed = errors.New("storing content item failed")
)
