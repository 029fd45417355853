// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/seeker/core"
	"github.com/poiesic/seeker/search"
)

const defaultRequestTimeout = 30 * time.Second

// Searcher is the subset of search.Searcher the server needs.
type Searcher interface {
	Search(ctx context.Context, query string, temporalFilter string) ([]*core.SimilarityMatch, error)
}

// Server exposes the search service over HTTP.
type Server struct {
	searcher Searcher
	engine   *gin.Engine
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger used by the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithRequestTimeout sets the per-request deadline for search handling.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout <= 0 {
			return errors.New("request timeout must be positive")
		}
		s.timeout = timeout
		return nil
	}
}

// New creates a Server around the given searcher.
func New(searcher Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher required")
	}

	s := &Server{
		searcher: searcher,
		timeout:  defaultRequestTimeout,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.POST("/search", s.handleSearch)
	engine.GET("/healthz", s.handleHealthz)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler, for mounting or for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on the given address and blocks until it stops.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting HTTP server", "addr", addr)
	return s.engine.Run(addr)
}

type searchRequest struct {
	Query          string `json:"query"`
	TemporalFilter string `json:"temporalFilter"`
}

type tagResponse struct {
	Slug         string `json:"slug"`
	Weight       int    `json:"weight"`
	SegmentStart int    `json:"segmentStart"`
	SegmentEnd   int    `json:"segmentEnd"`
}

type matchResponse struct {
	Id          core.ID       `json:"id"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Takeaways   []string      `json:"takeaways"`
	ContentTags []tagResponse `json:"contentTags"`
	PublishedAt time.Time     `json:"publishedAt"`
	Similarity  float32       `json:"similarity"`
}

type searchResponse struct {
	Success bool            `json:"success"`
	Matches []matchResponse `json:"matches"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	matches, err := s.searcher.Search(ctx, req.Query, req.TemporalFilter)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		case errors.Is(err, search.ErrInvalidTemporalFilter):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid temporal filter"})
		default:
			s.logger.Error("search failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		}
		return
	}

	response := searchResponse{
		Success: true,
		Matches: make([]matchResponse, 0, len(matches)),
	}
	for _, m := range matches {
		tags := make([]tagResponse, 0, len(m.Item.Tags))
		for _, tag := range m.Item.Tags {
			tags = append(tags, tagResponse{
				Slug:         tag.Slug,
				Weight:       tag.Weight,
				SegmentStart: tag.SegmentStart,
				SegmentEnd:   tag.SegmentEnd,
			})
		}
		response.Matches = append(response.Matches, matchResponse{
			Id:          m.Item.Id,
			Title:       m.Item.Title,
			Category:    m.Item.Category,
			Takeaways:   m.Item.Takeaways,
			ContentTags: tags,
			PublishedAt: m.Item.PublishedAt,
			Similarity:  m.Similarity,
		})
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
