package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

var errSourceDisabled = errors.New("arXiv source is disabled in configuration")

// paperOutput is one paper printed by the search command.
type paperOutput struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Published  string   `json:"published"`
	Abstract   string   `json:"abstract"`
	URL        string   `json:"url"`
	Categories []string `json:"categories"`
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search arXiv for papers",
		Long: `Search queries arXiv by content and author, ordered by relevance. At least
one of --query or --author is required.`,
		Args: cobra.NoArgs,
		RunE: runSearch,
	}

	cmd.Flags().String("query", "", "free-text query matched against all fields")
	cmd.Flags().String("author", "", "filter by author name")
	cmd.Flags().Int("max-results", 10, "maximum number of results to return (1-100)")

	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	author, _ := cmd.Flags().GetString("author")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	params := papersources.SearchParams{
		Query:      strings.TrimSpace(query),
		Author:     strings.TrimSpace(author),
		SortBy:     papersources.SortByRelevance,
		MaxResults: maxResults,
	}
	if params.IsEmpty() {
		return errors.New("provide --query or --author")
	}
	if maxResults < 1 || maxResults > 100 {
		return fmt.Errorf("--max-results must be between 1 and 100, got %d", maxResults)
	}

	_, components, _, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer components.Close()
	if components.Source == nil {
		return errSourceDisabled
	}

	result, err := components.Source.Search(commandContext(cmd), params)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), papersOutput(result.Papers))
}

func papersOutput(papers []domain.Paper) []paperOutput {
	out := make([]paperOutput, 0, len(papers))
	for _, p := range papers {
		out = append(out, paperOutput{
			Title:      p.Title,
			Authors:    p.Authors,
			Published:  p.PublishedDate(),
			Abstract:   p.Abstract,
			URL:        p.URL,
			Categories: p.Categories,
		})
	}
	return out
}
