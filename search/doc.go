// Package search implements semantic similarity search over the content
// store.
//
// A Searcher normalizes the incoming query, resolves its embedding through
// the query cache (falling back to the embedding provider on a miss), and
// asks the content repository for the closest items above a similarity
// threshold, optionally restricted to a recent publication window.
//
// # Usage
//
//	searcher, err := search.NewSearcher(contentRepo, queryCache, aiProvider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer searcher.Release()
//
//	matches, err := searcher.Search(ctx, "durable pasta techniques", "30")
//	for _, m := range matches {
//	    fmt.Println(m.Item.Title, m.Similarity)
//	}
//
// Cache writes after a miss happen on a background worker pool and never
// fail the search. Use SearchWithMonitor to observe cache hits, misses, and
// match counts.
package search
