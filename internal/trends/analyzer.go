// Package trends summarizes the most recent papers on a topic.
package trends

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

// Defaults for a trend analysis.
const (
	DefaultTopic    = "AI"
	DefaultPapers   = 50
	TopAuthorsLimit = 10
	TopKeywordLimit = 20
)

// Analyzer fetches recent papers and aggregates them.
type Analyzer struct {
	source papersources.PaperSource
	logger zerolog.Logger
}

// NewAnalyzer creates an Analyzer over source.
func NewAnalyzer(source papersources.PaperSource, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		source: source,
		logger: logger.With().Str("component", "trends").Logger(),
	}
}

// Analyze searches the DefaultPapers newest papers for topic and summarizes
// them. A blank topic means DefaultTopic. Source failures are returned.
func (a *Analyzer) Analyze(ctx context.Context, topic string) (string, domain.TrendAnalysis, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}

	result, err := a.source.Search(ctx, papersources.SearchParams{
		RawQuery:   topic,
		SortBy:     papersources.SortBySubmittedDate,
		MaxResults: DefaultPapers,
	})
	if err != nil {
		return topic, domain.TrendAnalysis{}, fmt.Errorf("searching %s: %w", a.source.Name(), err)
	}

	var papers []domain.Paper
	if result != nil {
		papers = result.Papers
	}

	analysis := Summarize(papers)

	a.logger.Debug().
		Str("topic", topic).
		Int("papers_analyzed", analysis.PapersAnalyzed).
		Msg("trend analysis complete")

	return topic, analysis, nil
}

// Summarize aggregates papers into a year distribution, the most frequent
// authors and the most frequent abstract keywords. Ties keep first-seen
// order.
func Summarize(papers []domain.Paper) domain.TrendAnalysis {
	years := make(map[int]int)
	authors := domain.NewCounter()
	keywords := domain.NewCounter()

	for _, p := range papers {
		if !p.Published.IsZero() {
			years[p.Published.Year()]++
		}
		for _, name := range p.Authors {
			authors.Add(name)
		}
		for _, token := range domain.KeywordTokens(p.Abstract) {
			keywords.Add(token)
		}
	}

	return domain.TrendAnalysis{
		PapersAnalyzed:   len(papers),
		YearDistribution: years,
		TopAuthors:       authors.MostCommon(TopAuthorsLimit),
		TopKeywords:      keywords.MostCommon(TopKeywordLimit),
	}
}
