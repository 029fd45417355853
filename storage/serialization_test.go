package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/seeker/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("yt:abc123")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestMarshalUnmarshalContentItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	item := &core.ContentItem{
		Id:        core.IDFromContent("yt:abc123"),
		Title:     "Best Pasta Recipe",
		Category:  "Cooking",
		Takeaways: []string{"Use fresh tomatoes", "salt the water"},
		Tags: []core.ContentTag{
			{Slug: "pasta", Weight: 9, SegmentStart: 0, SegmentEnd: 100},
		},
		Vector:      []float32{0.1, 0.2, 0.3},
		PublishedAt: now.Add(-30 * 24 * time.Hour),
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	data := MarshalContentItem(item)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalContentItem(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, item.Id, decoded.Id)
	assert.Equal(t, item.Title, decoded.Title)
	assert.Equal(t, item.Category, decoded.Category)
	assert.Equal(t, item.Takeaways, decoded.Takeaways)
	assert.Equal(t, item.Tags, decoded.Tags)
	assert.Equal(t, item.Vector, decoded.Vector)
	assert.True(t, item.PublishedAt.Equal(decoded.PublishedAt))
	assert.True(t, item.InsertedAt.Equal(decoded.InsertedAt))
	assert.True(t, item.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestUnmarshalContentItem_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"partial data", []byte{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalContentItem(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalCacheEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := &core.CacheEntry{
		Query:     "pasta recipes",
		Vector:    []float32{0.5, -0.25, 0.75},
		UpdatedAt: now,
	}

	data := MarshalCacheEntry(entry)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCacheEntry(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, entry.Query, decoded.Query)
	assert.Equal(t, entry.Vector, decoded.Vector)
	assert.True(t, entry.UpdatedAt.Equal(decoded.UpdatedAt))
}
