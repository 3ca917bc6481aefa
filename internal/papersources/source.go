// Package papersources provides interfaces and types for academic paper source clients.
//
// The research ideas service uses a single literature source (arXiv), but the
// pipeline only depends on the PaperSource interface so tests and future
// sources can be swapped in.
//
// Example usage:
//
//	source := arxiv.New(arxiv.Config{})
//	result, err := source.Search(ctx, papersources.SearchParams{
//		Query:      "graph neural networks",
//		Author:     "Kipf",
//		SortBy:     papersources.SortByRelevance,
//		MaxResults: 10,
//	})
package papersources

import (
	"context"
	"time"

	"github.com/helixir/research-ideas-service/internal/domain"
)

// SortBy selects the ordering of search results.
type SortBy string

const (
	// SortByRelevance orders results by the source's relevance score.
	SortByRelevance SortBy = "relevance"

	// SortBySubmittedDate orders results newest first.
	SortBySubmittedDate SortBy = "submittedDate"
)

// SearchParams defines the parameters for searching academic papers.
// At least one of RawQuery, Query or Author must be set.
type SearchParams struct {
	// RawQuery is sent to the source verbatim and takes precedence over
	// Query and Author.
	RawQuery string

	// Query is matched against all fields of a record.
	Query string

	// Author restricts results to papers with a matching author.
	Author string

	// SortBy selects result ordering. Empty means SortByRelevance.
	SortBy SortBy

	// MaxResults bounds the number of papers returned.
	// A value of 0 uses the source's default limit.
	MaxResults int
}

// IsEmpty reports whether no query clause is set.
func (p SearchParams) IsEmpty() bool {
	return p.RawQuery == "" && p.Query == "" && p.Author == ""
}

// SearchResult contains the results from a paper source search operation.
type SearchResult struct {
	// Papers contains the papers returned by the search, in source order.
	Papers []domain.Paper

	// TotalResults is the total number of papers matching the query as
	// reported by the source.
	TotalResults int

	// Source names the paper source that produced the results.
	Source string

	// SearchDuration is the time taken to execute the search,
	// including network latency and response parsing.
	SearchDuration time.Duration
}

// PaperSource is implemented by literature source clients.
type PaperSource interface {
	// Search queries the paper source for papers matching the given parameters.
	// Implementations must respect context cancellation and wrap errors with
	// source context.
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)

	// Name returns a human-readable name for this paper source.
	Name() string
}
