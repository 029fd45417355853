package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/seeker/ai/mock"
	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/storage"
)

// countingRepo records how many range sweeps a run performs.
type countingRepo struct {
	storage.ContentRepository
	rangeFetches int
}

func (r *countingRepo) GetContentItemsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ContentItem, error) {
	r.rangeFetches++
	return r.ContentRepository.GetContentItemsByDateRange(ctx, start, end)
}

func TestReembedder_Run(t *testing.T) {
	repo := setupTestRepo(t)
	items := seedItems(t, repo, 7)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0, 0}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	config := &Config{BatchSize: 3, ReportInterval: 3, MaxRetries: 2, RetryDelay: time.Millisecond}

	r := NewReembedder(repo, embedder, config, &progress)
	err := r.Run(context.Background())
	require.NoError(t, err)

	// Every item now carries a vector.
	for _, item := range items {
		stored, err := repo.GetContentItem(context.Background(), item.Id)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0, 0}, stored.Vector)
	}

	output := progress.String()
	assert.Contains(t, output, "Starting reembedding of 7 items")
	assert.Contains(t, output, "Reembedding complete")
}

func TestReembedder_EmptyDatabase(t *testing.T) {
	repo := setupTestRepo(t)
	embedder := mock.NewMockEmbedder()

	var progress bytes.Buffer
	r := NewReembedder(repo, embedder, nil, &progress)
	err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, progress.String(), "No items found")
	assert.Equal(t, 0, embedder.CallCount())
}

func TestReembedder_DefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 100, config.BatchSize)
	assert.Equal(t, 100, config.ReportInterval)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, time.Second, config.RetryDelay)
}

func TestReembedder_FetchesStoreOnce(t *testing.T) {
	repo := &countingRepo{ContentRepository: setupTestRepo(t)}
	seedItems(t, repo, 5)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0, 1, 0}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	config := &Config{BatchSize: 2, ReportInterval: 2, MaxRetries: 1, RetryDelay: time.Millisecond}

	r := NewReembedder(repo, embedder, config, &progress)
	err := r.Run(context.Background())
	require.NoError(t, err)

	// The same sweep serves the item count and the batching
	assert.Equal(t, 1, repo.rangeFetches)
}

func TestReembedder_ReembedsHistoricalItems(t *testing.T) {
	repo := setupTestRepo(t)

	ctx := context.Background()
	stored, err := repo.UpsertContentItems(ctx, &core.ContentItem{
		Id:          core.IDFromContent("archive/1"),
		Title:       "Pre-epoch archive item",
		Category:    "Testing",
		Takeaways:   []string{"insight"},
		Vector:      []float32{1, 0},
		PublishedAt: time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0, 0, 1}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	r := NewReembedder(repo, embedder, nil, &progress)
	err = r.Run(ctx)
	require.NoError(t, err)

	got, err := repo.GetContentItem(ctx, stored[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, got.Vector)
}

func TestReembedder_PropagatesBatchFailure(t *testing.T) {
	repo := setupTestRepo(t)
	seedItems(t, repo, 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	var progress bytes.Buffer
	config := &Config{BatchSize: 10, ReportInterval: 10, MaxRetries: 1, RetryDelay: time.Millisecond}

	r := NewReembedder(repo, embedder, config, &progress)
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service down")
}
