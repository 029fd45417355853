package search

import "strings"

// Normalize canonicalizes query text for cache lookups and embedding:
// surrounding whitespace is trimmed and the result is lowercased. The
// operation is idempotent, so cache keys written by one caller are found by
// any other caller normalizing the same text.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
