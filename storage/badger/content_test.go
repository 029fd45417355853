package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

func newTestItem(ref, title string, publishedAt time.Time) *core.ContentItem {
	return &core.ContentItem{
		Id:          core.IDFromContent(ref),
		Title:       title,
		Category:    "Cooking",
		Takeaways:   []string{"one", "two"},
		Tags:        []core.ContentTag{{Slug: "pasta", Weight: 7, SegmentStart: 0, SegmentEnd: 100}},
		PublishedAt: publishedAt,
	}
}

func TestUpsertContentItems_Insert(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	item := newTestItem("yt:abc", "Pasta Basics", time.Now().UTC().Add(-24*time.Hour))

	added, err := repo.UpsertContentItems(ctx, item)
	require.NoError(t, err)
	require.Len(t, added, 1)

	assert.False(t, added[0].InsertedAt.IsZero())
	assert.False(t, added[0].UpdatedAt.IsZero())

	got, err := repo.GetContentItem(ctx, item.Id)
	require.NoError(t, err)
	assert.Equal(t, "Pasta Basics", got.Title)
	assert.Equal(t, item.Tags, got.Tags)
}

func TestUpsertContentItems_Replace(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	published := time.Now().UTC().Add(-24 * time.Hour)

	first := newTestItem("yt:abc", "Original Title", published)
	_, err = repo.UpsertContentItems(ctx, first)
	require.NoError(t, err)
	insertedAt := first.InsertedAt

	// Same external ref, same ID: replaces the record, keeps InsertedAt
	second := newTestItem("yt:abc", "Revised Title", published)
	_, err = repo.UpsertContentItems(ctx, second)
	require.NoError(t, err)

	got, err := repo.GetContentItem(ctx, second.Id)
	require.NoError(t, err)
	assert.Equal(t, "Revised Title", got.Title)
	assert.True(t, got.InsertedAt.Equal(insertedAt))

	all, err := repo.GetContentItemsByDateRange(ctx, published.Add(-time.Hour), published.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetContentItem_NotFound(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = repo.GetContentItem(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetContentItems_SkipsMissing(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	item := newTestItem("yt:abc", "Only One", time.Now().UTC().Add(-time.Hour))
	_, err = repo.UpsertContentItems(ctx, item)
	require.NoError(t, err)

	got, err := repo.GetContentItems(ctx, item.Id, core.ID(999))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetContentItemsByDateRange(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []*core.ContentItem{
		newTestItem("a", "January item", base.AddDate(0, -5, 0)),
		newTestItem("b", "June item", base),
		newTestItem("c", "July item", base.AddDate(0, 1, 0)),
	}
	_, err = repo.UpsertContentItems(ctx, items...)
	require.NoError(t, err)

	got, err := repo.GetContentItemsByDateRange(ctx, base.AddDate(0, 0, -1), base.AddDate(0, 0, 40))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by publication date
	assert.Equal(t, "June item", got[0].Title)
	assert.Equal(t, "July item", got[1].Title)
}

func TestGetContentItemsByDateRange_Pre1970(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	// Historical imports carry arbitrary dates; the index must keep
	// chronological order across the epoch.
	items := []*core.ContentItem{
		newTestItem("a", "Archive item", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)),
		newTestItem("b", "Epoch item", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)),
		newTestItem("c", "Modern item", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	_, err = repo.UpsertContentItems(ctx, items...)
	require.NoError(t, err)

	got, err := repo.GetContentItemsByDateRange(ctx,
		time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Archive item", got[0].Title)
	assert.Equal(t, "Epoch item", got[1].Title)
	assert.Equal(t, "Modern item", got[2].Title)

	// A range ending before the epoch finds only the archive item
	archiveOnly, err := repo.GetContentItemsByDateRange(ctx,
		time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, archiveOnly, 1)
	assert.Equal(t, "Archive item", archiveOnly[0].Title)
}

func TestUpsertContentItems_PublishedAtChangeMovesIndex(t *testing.T) {
	repo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	oldDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	item := newTestItem("yt:abc", "Moves around", oldDate)
	_, err = repo.UpsertContentItems(ctx, item)
	require.NoError(t, err)

	updated := newTestItem("yt:abc", "Moves around", newDate)
	_, err = repo.UpsertContentItems(ctx, updated)
	require.NoError(t, err)

	inOldRange, err := repo.GetContentItemsByDateRange(ctx, oldDate.Add(-time.Hour), oldDate.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, inOldRange)

	inNewRange, err := repo.GetContentItemsByDateRange(ctx, newDate.Add(-time.Hour), newDate.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inNewRange, 1)
}
