package mock

import (
	"context"
	"strings"

	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/core"
)

// MockSummaryExtractor is a test double for ai.SummaryExtractor.
// It allows custom behavior injection via function fields.
type MockSummaryExtractor struct {
	// ExtractSummaryFunc is called by ExtractSummary if set.
	// If nil, uses default simple word-based summarization.
	ExtractSummaryFunc func(ctx context.Context, text string) (*ai.ExtractedSummary, error)

	callCount int
}

// NewMockSummaryExtractor creates a mock summary extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockSummaryExtractor() *MockSummaryExtractor {
	return &MockSummaryExtractor{}
}

// ExtractSummary produces a simple mock summary from text.
// Default behavior: the first words become the title, early words become
// takeaways and tag slugs.
func (m *MockSummaryExtractor) ExtractSummary(ctx context.Context, text string) (*ai.ExtractedSummary, error) {
	m.callCount++

	if m.ExtractSummaryFunc != nil {
		return m.ExtractSummaryFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return &ai.ExtractedSummary{Title: "Untitled", Category: "General"}, nil
	}

	titleWords := words
	if len(titleWords) > 5 {
		titleWords = titleWords[:5]
	}

	takeaways := make([]string, 0, core.MaxTakeaways)
	tags := make([]ai.ExtractedTag, 0, 3)
	weight := 10
	for i, word := range words {
		if i >= 3 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}

		takeaways = append(takeaways, word)
		tags = append(tags, ai.ExtractedTag{
			Slug:         word,
			Weight:       weight,
			SegmentStart: 0,
			SegmentEnd:   100,
		})

		if weight > 1 {
			weight--
		}
	}

	return &ai.ExtractedSummary{
		Title:     strings.Join(titleWords, " "),
		Category:  "General",
		Takeaways: takeaways,
		Tags:      tags,
	}, nil
}

// CallCount returns the number of times ExtractSummary was called.
func (m *MockSummaryExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummaryExtractor) Reset() {
	m.callCount = 0
	m.ExtractSummaryFunc = nil
}
