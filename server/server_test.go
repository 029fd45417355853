package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/search"
)

type stubSearcher struct {
	matches []*core.SimilarityMatch
	err     error

	lastQuery  string
	lastFilter string
}

func (s *stubSearcher) Search(_ context.Context, query, temporalFilter string) ([]*core.SimilarityMatch, error) {
	s.lastQuery = query
	s.lastFilter = temporalFilter
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

func doSearch(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_RequiresSearcher(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestServer_Healthz(t *testing.T) {
	srv, err := New(&stubSearcher{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SearchSuccess(t *testing.T) {
	publishedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubSearcher{
		matches: []*core.SimilarityMatch{
			{
				Item: &core.ContentItem{
					Id:        42,
					Title:     "Best Pasta Recipe",
					Category:  "Cooking",
					Takeaways: []string{"Use fresh tomatoes"},
					Tags: []core.ContentTag{
						{Slug: "pasta", Weight: 9, SegmentStart: 0, SegmentEnd: 100},
					},
					PublishedAt: publishedAt,
				},
				Similarity: 0.87,
			},
		},
	}
	srv, err := New(stub)
	require.NoError(t, err)

	rec := doSearch(t, srv, `{"query": "pasta ideas", "temporalFilter": "30"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "pasta ideas", stub.lastQuery)
	assert.Equal(t, "30", stub.lastFilter)

	var resp struct {
		Success bool `json:"success"`
		Matches []struct {
			Id          uint64   `json:"id"`
			Title       string   `json:"title"`
			Category    string   `json:"category"`
			Takeaways   []string `json:"takeaways"`
			ContentTags []struct {
				Slug   string `json:"slug"`
				Weight int    `json:"weight"`
			} `json:"contentTags"`
			Similarity float32 `json:"similarity"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Matches, 1)
	m := resp.Matches[0]
	assert.Equal(t, uint64(42), m.Id)
	assert.Equal(t, "Best Pasta Recipe", m.Title)
	assert.Equal(t, "Cooking", m.Category)
	assert.Equal(t, []string{"Use fresh tomatoes"}, m.Takeaways)
	require.Len(t, m.ContentTags, 1)
	assert.Equal(t, "pasta", m.ContentTags[0].Slug)
	assert.Equal(t, 9, m.ContentTags[0].Weight)
	assert.InDelta(t, 0.87, m.Similarity, 1e-6)
}

func TestServer_SearchEmptyResult(t *testing.T) {
	srv, err := New(&stubSearcher{})
	require.NoError(t, err)

	rec := doSearch(t, srv, `{"query": "nothing matches this"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
}

func TestServer_SearchErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"empty query", search.ErrEmptyQuery, http.StatusBadRequest, "Query is required"},
		{"invalid temporal filter", search.ErrInvalidTemporalFilter, http.StatusBadRequest, "Invalid temporal filter"},
		{"embedding failure", search.ErrEmbeddingFailed, http.StatusInternalServerError, "Search failed"},
		{"match failure", search.ErrMatchFailed, http.StatusInternalServerError, "Search failed"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "Search failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := New(&stubSearcher{err: tt.err})
			require.NoError(t, err)

			rec := doSearch(t, srv, `{"query": "anything"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestServer_SearchMalformedBody(t *testing.T) {
	srv, err := New(&stubSearcher{})
	require.NoError(t, err)

	rec := doSearch(t, srv, `{"query": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Query is required", resp["error"])
}

func TestServer_Options(t *testing.T) {
	t.Run("invalid timeout", func(t *testing.T) {
		_, err := New(&stubSearcher{}, WithRequestTimeout(0))
		assert.Error(t, err)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := New(&stubSearcher{}, WithLogger(nil))
		assert.Error(t, err)
	})

	t.Run("valid options", func(t *testing.T) {
		srv, err := New(&stubSearcher{}, WithRequestTimeout(time.Second))
		require.NoError(t, err)
		assert.NotNil(t, srv.Handler())
	})
}
