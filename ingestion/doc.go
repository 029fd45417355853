// Package ingestion turns raw submissions into indexed content items.
//
// A Pipeline runs each submission through summary extraction, validates and
// stores the resulting content item, and then embeds the item's canonical
// text on a background worker pool. The raw submission text is never
// embedded; only the canonical summary representation reaches the embedding
// provider, which keeps padded or keyword-stuffed submissions from gaming
// the index.
//
// # Usage
//
//	pipeline, err := ingestion.NewPipeline(contentRepo, aiProvider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Release()
//
//	item, err := pipeline.Ingest(ctx, ingestion.Submission{
//	    ExternalRef: "articles/2025/pasta-guide",
//	    RawText:     articleBody,
//	    PublishedAt: publishedAt,
//	})
//
//	// Wait for background embedding before shutdown.
//	pipeline.Wait()
package ingestion
