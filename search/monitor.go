package search

import "github.com/poiesic/seeker/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	CacheHit(query string)
	CacheMiss(query string)
	AfterMatch(matches []*core.SimilarityMatch)
	Finish(results []*core.SimilarityMatch)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) CacheHit(_ string)                    {}
func (n *noopMonitor) CacheMiss(_ string)                   {}
func (n *noopMonitor) AfterMatch(_ []*core.SimilarityMatch) {}
func (n *noopMonitor) Finish(_ []*core.SimilarityMatch)     {}
