package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SummaryExtractor distills raw content text into a bounded structured
// summary. Implementations must be thread-safe for concurrent use.
type SummaryExtractor interface {
	// ExtractSummary analyzes raw text and produces a title, category,
	// key takeaways, and weighted topic tags. The summary, not the raw
	// text, is what gets embedded downstream.
	// Returns an error if extraction fails or the model output cannot
	// be parsed.
	ExtractSummary(ctx context.Context, text string) (*ExtractedSummary, error)
}

// ExtractedSummary is the structured distillation of one piece of content.
type ExtractedSummary struct {
	// Title is a short descriptive title for the content.
	Title string

	// Category is a single broad category label, e.g. "Cooking".
	Category string

	// Takeaways are the key insights, at most three short statements.
	Takeaways []string

	// Tags are weighted topic labels with segment ranges.
	Tags []ExtractedTag
}

// ExtractedTag is a topic identified in the content.
type ExtractedTag struct {
	// Slug is the topic identifier in lowercase snake_case.
	// Example: "italian_food", "pasta"
	Slug string

	// Weight is a score from 1-10 indicating how central this topic
	// is to the content. Higher scores = more central.
	Weight int

	// SegmentStart and SegmentEnd bound the portion of the content
	// (as percentages of its runtime) that discusses the topic.
	SegmentStart int
	SegmentEnd   int
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and SummaryExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// SummaryExtractor returns the summary extraction service.
	// The returned SummaryExtractor is safe for concurrent use.
	SummaryExtractor() SummaryExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
