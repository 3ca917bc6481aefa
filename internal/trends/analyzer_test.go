package trends

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

type fakeSource struct {
	papers []domain.Paper
	err    error
	params papersources.SearchParams
}

func (f *fakeSource) Search(_ context.Context, params papersources.SearchParams) (*papersources.SearchResult, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &papersources.SearchResult{Papers: f.papers}, nil
}

func (f *fakeSource) Name() string { return "fake" }

func paper(year int, abstract string, authors ...string) domain.Paper {
	return domain.Paper{
		Published: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Abstract:  abstract,
		Authors:   authors,
	}
}

func TestSummarize(t *testing.T) {
	papers := []domain.Paper{
		paper(2024, "Diffusion models beat GANs.", "Ho, J.", "Salimans, T."),
		paper(2024, "Diffusion transformers scale well", "Peebles, W.", "Ho, J."),
		paper(2023, "Score matching for diffusion", "Song, Y."),
	}

	got := Summarize(papers)

	assert.Equal(t, 3, got.PapersAnalyzed)
	assert.Equal(t, map[int]int{2024: 2, 2023: 1}, got.YearDistribution)
	require.NotEmpty(t, got.TopAuthors)
	assert.Equal(t, domain.Count{Term: "Ho, J.", Count: 2}, got.TopAuthors[0])
	assert.Equal(t, domain.Count{Term: "Salimans, T.", Count: 1}, got.TopAuthors[1])
	require.NotEmpty(t, got.TopKeywords)
	assert.Equal(t, domain.Count{Term: "diffusion", Count: 3}, got.TopKeywords[0])
	for _, kw := range got.TopKeywords {
		assert.NotEqual(t, "gans.", kw.Term)
	}
}

func TestSummarize_Limits(t *testing.T) {
	var papers []domain.Paper
	for i := 0; i < 30; i++ {
		papers = append(papers, paper(2020+i%3,
			fmt.Sprintf("keyword%c alpha%c", 'a'+i%26, 'a'+(i+1)%26),
			fmt.Sprintf("Author %02d", i)))
	}

	got := Summarize(papers)

	assert.Len(t, got.TopAuthors, TopAuthorsLimit)
	assert.LessOrEqual(t, len(got.TopKeywords), TopKeywordLimit)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	assert.Zero(t, got.PapersAnalyzed)
	assert.Empty(t, got.YearDistribution)
	assert.Empty(t, got.TopAuthors)
	assert.Empty(t, got.TopKeywords)
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Run("searches newest papers for topic", func(t *testing.T) {
		src := &fakeSource{papers: []domain.Paper{paper(2025, "robot learning", "Levine, S.")}}
		a := NewAnalyzer(src, zerolog.Nop())

		topic, analysis, err := a.Analyze(context.Background(), "robotics")

		require.NoError(t, err)
		assert.Equal(t, "robotics", topic)
		assert.Equal(t, 1, analysis.PapersAnalyzed)
		assert.Equal(t, papersources.SearchParams{
			RawQuery:   "robotics",
			SortBy:     papersources.SortBySubmittedDate,
			MaxResults: DefaultPapers,
		}, src.params)
	})

	t.Run("blank topic defaults to AI", func(t *testing.T) {
		src := &fakeSource{}
		a := NewAnalyzer(src, zerolog.Nop())

		topic, _, err := a.Analyze(context.Background(), " ")

		require.NoError(t, err)
		assert.Equal(t, DefaultTopic, topic)
		assert.Equal(t, DefaultTopic, src.params.RawQuery)
	})

	t.Run("source failure is returned", func(t *testing.T) {
		cause := errors.New("arXiv down")
		a := NewAnalyzer(&fakeSource{err: cause}, zerolog.Nop())

		_, _, err := a.Analyze(context.Background(), "robotics")

		assert.ErrorIs(t, err, cause)
	})
}
