package ideas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/research-ideas-service/internal/papersources"
	"github.com/helixir/research-ideas-service/internal/papersources/arxiv"
)

func TestClampPaperLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{7, 7},
		{10, 10},
		{25, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPaperLimit(tt.in), "ClampPaperLimit(%d)", tt.in)
	}
}

func TestBuildContext(t *testing.T) {
	ctx := context.Background()

	t.Run("returns source papers in order", func(t *testing.T) {
		src := &fakeSource{result: &papersources.SearchResult{Papers: papersN(4)}}
		b := NewContextBuilder(src, zerolog.Nop())

		papers, fell := b.BuildContext(ctx, "quantum computing", 5)

		assert.False(t, fell)
		require.Len(t, papers, 4)
		assert.Equal(t, "Paper A", papers[0].Title)
		require.Len(t, src.calls, 1)
		assert.Equal(t, papersources.SearchParams{
			RawQuery:   "quantum computing",
			SortBy:     papersources.SortByRelevance,
			MaxResults: 5,
		}, src.calls[0])
	})

	t.Run("limit is clamped before searching", func(t *testing.T) {
		src := &fakeSource{result: &papersources.SearchResult{Papers: papersN(10)}}
		b := NewContextBuilder(src, zerolog.Nop())

		_, _ = b.BuildContext(ctx, "robotics", 25)

		require.Len(t, src.calls, 1)
		assert.Equal(t, MaxPapers, src.calls[0].MaxResults)
	})

	t.Run("over-long result is truncated", func(t *testing.T) {
		src := &fakeSource{result: &papersources.SearchResult{Papers: papersN(8)}}
		b := NewContextBuilder(src, zerolog.Nop())

		papers, fell := b.BuildContext(ctx, "robotics", 3)

		assert.False(t, fell)
		assert.Len(t, papers, 3)
	})

	t.Run("source failure yields synthetic papers", func(t *testing.T) {
		src := &fakeSource{err: errors.New("connection refused")}
		b := NewContextBuilder(src, zerolog.Nop())

		papers, fell := b.BuildContext(ctx, "robotics", 10)

		assert.True(t, fell)
		require.Len(t, papers, 3)
		assert.Equal(t, "Deep Learning Approaches for robotics: A Comprehensive Survey", papers[0].Title)
	})

	t.Run("empty result yields synthetic papers", func(t *testing.T) {
		src := &fakeSource{result: &papersources.SearchResult{}}
		b := NewContextBuilder(src, zerolog.Nop())

		papers, fell := b.BuildContext(ctx, "robotics", 10)

		assert.True(t, fell)
		assert.Len(t, papers, 3)
	})

	t.Run("nil source yields synthetic papers", func(t *testing.T) {
		b := NewContextBuilder(nil, zerolog.Nop())

		papers, fell := b.BuildContext(ctx, "robotics", 2)

		assert.True(t, fell)
		assert.Len(t, papers, 2)
	})
}

func TestBuildContext_Timeout(t *testing.T) {
	t.Run("retry-after beyond the budget falls back promptly", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		src := arxiv.New(arxiv.Config{BaseURL: srv.URL, Timeout: 500 * time.Millisecond, RateLimit: 100, BurstSize: 10})
		b := NewContextBuilder(src, zerolog.Nop())
		b.SetTimeout(time.Second)

		start := time.Now()
		papers, fell := b.BuildContext(context.Background(), "graph neural networks", 5)
		elapsed := time.Since(start)

		assert.True(t, fell)
		assert.Len(t, papers, 3)
		assert.Less(t, elapsed, 2*time.Second)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("slow source is cut off at the budget", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer srv.Close()

		src := arxiv.New(arxiv.Config{BaseURL: srv.URL, Timeout: 10 * time.Second, RateLimit: 100, BurstSize: 10})
		b := NewContextBuilder(src, zerolog.Nop())
		b.SetTimeout(200 * time.Millisecond)

		start := time.Now()
		papers, fell := b.BuildContext(context.Background(), "graph neural networks", 5)

		assert.True(t, fell)
		assert.Len(t, papers, 3)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("pipeline option sets the budget", func(t *testing.T) {
		p := NewPipeline(nil, nil, zerolog.Nop(), WithLiteratureTimeout(2*time.Second))
		assert.Equal(t, 2*time.Second, p.builder.timeout)

		p = NewPipeline(nil, nil, zerolog.Nop(), WithLiteratureTimeout(0))
		assert.Equal(t, DefaultLiteratureTimeout, p.builder.timeout)
	})
}

func TestSyntheticPapers(t *testing.T) {
	t.Run("three papers with topic substituted", func(t *testing.T) {
		papers := SyntheticPapers("edge AI", 10)
		require.Len(t, papers, 3)
		assert.Equal(t, "Ethical Considerations in edge AI Systems", papers[1].Title)
		assert.Equal(t, "Novel Applications of edge AI in Healthcare", papers[2].Title)
		assert.Equal(t, "2024-03-10", papers[2].PublishedDate())
		for _, p := range papers {
			assert.NotEmpty(t, p.Abstract)
			assert.NotEmpty(t, p.Authors)
		}
	})

	t.Run("capped at limit", func(t *testing.T) {
		assert.Len(t, SyntheticPapers("x", 1), 1)
		assert.Len(t, SyntheticPapers("x", 0), 1)
	})
}
