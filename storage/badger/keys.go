package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/seeker/core"
)

// Key prefixes for different data types
const (
	contentItemPrefix     = "conitem"
	contentItemDatePrefix = "conitemd"
	queryCachePrefix      = "qcache"
)

// makeContentItemKey generates a key for a content item by ID.
func makeContentItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", contentItemPrefix, id))
}

// orderedMicros encodes a timestamp so lexicographic key order matches
// chronological order. Flipping the sign bit shifts signed micros into
// unsigned range, so pre-1970 publication dates sort before the epoch
// instead of wrapping past it.
func orderedMicros(t time.Time) uint64 {
	return uint64(t.UnixMicro()) ^ (1 << 63)
}

// makeContentDateKey generates a composite key for the publication date index.
// Format: prefix:timestamp:id
func makeContentDateKey(publishedAt time.Time, id core.ID) []byte {
	prefix := contentItemDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], orderedMicros(publishedAt))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialContentDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialContentDateKey(publishedAt time.Time) []byte {
	prefix := contentItemDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], orderedMicros(publishedAt))
	return buf
}

// makeQueryCacheKey generates a key for a cached query embedding.
// The namespace distinguishes embeddings from different models, so a model
// change rotates to fresh keys instead of serving stale vectors.
func makeQueryCacheKey(namespace, query string) []byte {
	if namespace == "" {
		return []byte(fmt.Sprintf("%s:%s", queryCachePrefix, query))
	}
	return []byte(fmt.Sprintf("%s:%s:%s", queryCachePrefix, namespace, query))
}
