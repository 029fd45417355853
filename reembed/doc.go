// Package reembed regenerates embeddings for existing content items, for
// example after switching to a new embedding model.
//
// This package supports batch processing of content items, progress
// tracking, retry logic with exponential backoff, and vector normalization
// to ensure compatibility with cosine similarity search. Embeddings are
// rebuilt from each item's canonical text, never from stored raw content.
//
// Reembedding does not touch the query cache; when the embedding model
// changes, point the cache at a fresh namespace so stale query vectors are
// never compared against the new item vectors.
package reembed
