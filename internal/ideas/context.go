// Package ideas implements the research idea generation pipeline.
//
// A run flows strictly forward through seven stages: literature context,
// prompt composition, one model invocation, JSON extraction, direction
// synthesis, per-direction idea expansion and assembly. Every stage that
// depends on an external service degrades to deterministic content built
// from the topic, so a run with a non-empty topic always yields three
// directions and three schema-complete ideas.
package ideas

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

// Bounds on the number of papers fetched as literature context.
const (
	MinPapers     = 1
	MaxPapers     = 10
	DefaultPapers = 10
)

// DefaultLiteratureTimeout bounds one literature search, retries included.
const DefaultLiteratureTimeout = 45 * time.Second

// ClampPaperLimit bounds n to [MinPapers, MaxPapers].
func ClampPaperLimit(n int) int {
	if n < MinPapers {
		return MinPapers
	}
	if n > MaxPapers {
		return MaxPapers
	}
	return n
}

// ContextBuilder fetches the literature a prompt is grounded on.
type ContextBuilder struct {
	source  papersources.PaperSource
	timeout time.Duration
	logger  zerolog.Logger
}

// NewContextBuilder creates a ContextBuilder. A nil source always yields
// the synthetic paper set.
func NewContextBuilder(source papersources.PaperSource, logger zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{
		source:  source,
		timeout: DefaultLiteratureTimeout,
		logger:  logger.With().Str("component", "context_builder").Logger(),
	}
}

// SetTimeout changes the search budget. Non-positive values are ignored.
func (b *ContextBuilder) SetTimeout(d time.Duration) {
	if d > 0 {
		b.timeout = d
	}
}

// BuildContext searches the literature source for topic, ordered by
// relevance, and returns at most limit papers. limit is clamped to
// [MinPapers, MaxPapers].
//
// The search, retries included, gets at most the builder's timeout. Any
// source failure, a timeout and an empty result all yield
// SyntheticPapers(topic, limit) and report true.
func (b *ContextBuilder) BuildContext(ctx context.Context, topic string, limit int) ([]domain.Paper, bool) {
	limit = ClampPaperLimit(limit)

	if b.source == nil {
		b.logger.Warn().Str("topic", topic).Msg("no literature source configured, using synthetic papers")
		return SyntheticPapers(topic, limit), true
	}

	searchCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	result, err := b.source.Search(searchCtx, papersources.SearchParams{
		RawQuery:   topic,
		SortBy:     papersources.SortByRelevance,
		MaxResults: limit,
	})
	if err != nil {
		b.logger.Warn().
			Err(err).
			Str("topic", topic).
			Str("source", b.source.Name()).
			Msg("literature search failed, using synthetic papers")
		return SyntheticPapers(topic, limit), true
	}
	if result == nil || len(result.Papers) == 0 {
		b.logger.Warn().
			Str("topic", topic).
			Str("source", b.source.Name()).
			Msg("literature search returned no papers, using synthetic papers")
		return SyntheticPapers(topic, limit), true
	}

	papers := result.Papers
	if len(papers) > limit {
		papers = papers[:limit]
	}

	b.logger.Debug().
		Str("topic", topic).
		Int("papers", len(papers)).
		Dur("search_duration", result.SearchDuration).
		Msg("literature context built")

	return papers, false
}

// SyntheticPapers returns the fixed template papers for topic, capped at
// limit. The set has three papers and is never empty for limit >= 1.
func SyntheticPapers(topic string, limit int) []domain.Paper {
	papers := []domain.Paper{
		{
			ID:              "2401.12345",
			Title:           "Deep Learning Approaches for " + topic + ": A Comprehensive Survey",
			Authors:         []string{"Smith, J.", "Johnson, A.", "Williams, B."},
			Published:       time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Abstract:        "This paper provides a comprehensive survey of deep learning methods in " + topic + ". It compares various techniques and clarifies their advantages and limitations...",
			URL:             "https://arxiv.org/abs/2401.12345",
			Categories:      []string{"cs.LG", "cs.AI"},
			PrimaryCategory: "cs.LG",
		},
		{
			ID:              "2402.67890",
			Title:           "Ethical Considerations in " + topic + " Systems",
			Authors:         []string{"Brown, C.", "Davis, E.", "Miller, F."},
			Published:       time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			Abstract:        "This paper examines ethical considerations in " + topic + " systems. It analyzes important issues such as privacy, transparency, and accountability...",
			URL:             "https://arxiv.org/abs/2402.67890",
			Categories:      []string{"cs.CY", "cs.AI"},
			PrimaryCategory: "cs.CY",
		},
		{
			ID:              "2403.54321",
			Title:           "Novel Applications of " + topic + " in Healthcare",
			Authors:         []string{"Wilson, G.", "Taylor, H.", "Anderson, I."},
			Published:       time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			Abstract:        "This paper proposes new methods for applying " + topic + " to the medical field. It achieves improved accuracy and efficiency compared to traditional approaches...",
			URL:             "https://arxiv.org/abs/2403.54321",
			Categories:      []string{"cs.LG", "q-bio.QM"},
			PrimaryCategory: "cs.LG",
		},
	}

	limit = ClampPaperLimit(limit)
	if limit < len(papers) {
		papers = papers[:limit]
	}
	return papers
}
