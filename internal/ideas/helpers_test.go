package ideas

import (
	"context"
	"fmt"
	"sync"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/llm"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

type fakeSource struct {
	mu     sync.Mutex
	result *papersources.SearchResult
	err    error
	calls  []papersources.SearchParams
}

func (f *fakeSource) Search(_ context.Context, params papersources.SearchParams) (*papersources.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeInvoker struct {
	mu      sync.Mutex
	out     llm.Outcome
	prompts []string
	ctxErr  error
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) llm.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.ctxErr = ctx.Err()
	return f.out
}

func (f *fakeInvoker) Provider() string { return "fake" }
func (f *fakeInvoker) Model() string    { return "fake-1" }

func (f *fakeInvoker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeRecorder struct {
	runs      int
	degraded  bool
	papers    int
	fallbacks []string
}

func (f *fakeRecorder) RecordPipelineRun(degraded bool, papers int, _ float64) {
	f.runs++
	f.degraded = degraded
	f.papers = papers
}

func (f *fakeRecorder) RecordFallback(stage string) {
	f.fallbacks = append(f.fallbacks, stage)
}

type fakeNotifier struct {
	results []domain.PipelineResult
}

func (f *fakeNotifier) IdeasGenerated(_ context.Context, result *domain.PipelineResult) {
	f.results = append(f.results, *result)
}

func papersN(n int) []domain.Paper {
	out := make([]domain.Paper, n)
	for i := range out {
		out[i] = domain.Paper{
			ID:       fmt.Sprintf("2501.%05d", i),
			Title:    fmt.Sprintf("Paper %c", 'A'+i),
			Authors:  []string{fmt.Sprintf("Author %c", 'A'+i)},
			Abstract: fmt.Sprintf("Abstract %c", 'A'+i),
		}
	}
	return out
}

const threeDirectionsJSON = `{"research_directions": [
	{"direction": "Sparse Attention", "rationale": "Long contexts", "gap_addressed": "Quadratic cost"},
	{"direction": "Retrieval Grounding", "rationale": "Hallucination", "gap_addressed": "Factuality"},
	{"direction": "Energy Efficiency", "rationale": "Carbon cost", "gap_addressed": "Green AI"}
]}`
