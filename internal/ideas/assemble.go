package ideas

import (
	"time"

	"github.com/helixir/research-ideas-service/internal/domain"
)

// Assembly collects the stage outputs of one run.
type Assembly struct {
	Topic              string
	FocusArea          string
	Papers             []domain.Paper
	Directions         [domain.DirectionCount]domain.ResearchDirection
	Ideas              [domain.DirectionCount]domain.ResearchIdea
	LiteratureFallback bool
	DirectionSource    DirectionSource
	GeneratedAt        time.Time
}

// Assemble builds the pipeline result. It cannot fail.
func Assemble(a Assembly) domain.PipelineResult {
	return domain.PipelineResult{
		Topic:              a.Topic,
		FocusArea:          a.FocusArea,
		PapersAnalyzed:     len(a.Papers),
		Directions:         a.Directions,
		Ideas:              a.Ideas,
		GeneratedAt:        a.GeneratedAt,
		LiteratureFallback: a.LiteratureFallback,
		DirectionsFallback: a.DirectionSource.Degraded(),
	}
}
