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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/core"
)

// SummaryExtractor implements ai.SummaryExtractor using OpenAI-compatible chat APIs.
type SummaryExtractor struct {
	client         llms.Model
	tagWeightFloor int
	logger         *slog.Logger
}

// contentTag is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type contentTag struct {
	Slug         string `json:"slug"`
	Weight       int    `json:"weight"`
	SegmentStart int    `json:"segment_start"`
	SegmentEnd   int    `json:"segment_end"`
}

// summary is the wrapper structure for the LLM's JSON response.
type summary struct {
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Takeaways   []string     `json:"takeaways"`
	ContentTags []contentTag `json:"content_tags"`
}

// newSummaryExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummaryExtractor(config *ai.Config) (*SummaryExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/extraction
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
		openai.WithHTTPClient(&http.Client{Timeout: config.RequestTimeout}),
	)
	if err != nil {
		return nil, err
	}

	return &SummaryExtractor{
		client:         client,
		tagWeightFloor: config.MaxTagWeightFloor,
		logger:         slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewSummaryExtractor creates a new summary extractor using the provided configuration.
//
// Returns ai.SummaryExtractor interface to enforce abstraction.
func NewSummaryExtractor(config *ai.Config) (ai.SummaryExtractor, error) {
	return newSummaryExtractor(config)
}

// ExtractSummary distills raw content text into a structured summary using an LLM.
// Tags below the weight floor are filtered out, takeaways are clamped to the
// domain maximum, and slugs are normalized to snake_case.
func (e *SummaryExtractor) ExtractSummary(ctx context.Context, text string) (*ai.ExtractedSummary, error) {
	text = strings.TrimSpace(text)

	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result summary
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &ai.ExtractedSummary{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	takeaways := result.Takeaways
	if len(takeaways) > core.MaxTakeaways {
		takeaways = takeaways[:core.MaxTakeaways]
	}

	// Filter by weight and convert to ai.ExtractedTag
	tags := make([]ai.ExtractedTag, 0, len(result.ContentTags))
	for _, tag := range result.ContentTags {
		if tag.Weight >= e.tagWeightFloor {
			tags = append(tags, ai.ExtractedTag{
				Slug:         slugify(tag.Slug),
				Weight:       tag.Weight,
				SegmentStart: tag.SegmentStart,
				SegmentEnd:   tag.SegmentEnd,
			})
		}
	}

	// Sort by weight (descending)
	slices.SortFunc(tags, func(a, b ai.ExtractedTag) int {
		if a.Weight == b.Weight {
			return 0
		}
		if a.Weight < b.Weight {
			return 1
		}
		return -1
	})

	e.logger.Debug("extracted summary",
		"title", result.Title,
		"total_tags", len(result.ContentTags),
		"filtered_tags", len(tags))

	return &ai.ExtractedSummary{
		Title:     strings.TrimSpace(result.Title),
		Category:  strings.TrimSpace(result.Category),
		Takeaways: takeaways,
		Tags:      tags,
	}, nil
}
