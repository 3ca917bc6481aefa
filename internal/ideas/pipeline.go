package ideas

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/llm"
	"github.com/helixir/research-ideas-service/internal/observability"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

// Recorder receives per-run telemetry.
// *observability.Metrics satisfies this interface.
type Recorder interface {
	RecordPipelineRun(degraded bool, papers int, durationSeconds float64)
	RecordFallback(stage string)
}

// Notifier is told about every completed run. Implementations must not
// block the caller for long and must swallow their own errors.
type Notifier interface {
	IdeasGenerated(ctx context.Context, result *domain.PipelineResult)
}

// Request is the input of one idea generation run.
type Request struct {
	Topic     string
	FocusArea string
	NumPapers int
}

// Pipeline runs the idea generation stages in order.
type Pipeline struct {
	builder  *ContextBuilder
	invoker  llm.Invoker
	logger   zerolog.Logger
	recorder Recorder
	notifier Notifier
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithLiteratureTimeout bounds each literature search, retries included.
func WithLiteratureTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.builder.SetTimeout(d) }
}

// WithClock overrides the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a Pipeline over a literature source and a model invoker.
// A nil source runs on synthetic papers.
func NewPipeline(source papersources.PaperSource, invoker llm.Invoker, logger zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		builder: NewContextBuilder(source, logger),
		invoker: invoker,
		logger:  logger.With().Str("component", "pipeline").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate runs one pipeline. The only error a caller should expect is a
// *domain.ValidationError for a blank topic; every external failure is
// absorbed into fallback content and flagged on the result.
func (p *Pipeline) Generate(ctx context.Context, req Request) (domain.PipelineResult, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return domain.PipelineResult{}, domain.NewValidationError("topic", "Research topic is empty.")
	}

	start := time.Now()
	logger := observability.WithPipelineContext(observability.FromContext(ctx, p.logger), topic, req.FocusArea)

	papers, literatureFallback := p.builder.BuildContext(ctx, topic, req.NumPapers)
	if literatureFallback {
		p.recordFallback(observability.StageLiterature)
	}

	prompt := ComposePrompt(topic, req.FocusArea, papers)

	// The model call runs to completion even if the client goes away.
	out := p.invoke(context.WithoutCancel(ctx), prompt)

	extraction := Extract(out)
	if out.Failed() {
		logger.Warn().
			Str("failure_kind", string(out.Kind())).
			Msg("model unavailable, using fallback directions")
	} else if _, ok := extraction.Object(); !ok {
		logger.Warn().
			Int("response_bytes", len(extraction.Raw())).
			Msg("model response held no JSON object")
	}

	directions, source := SynthesizeDirections(extraction, topic)
	if source.Degraded() {
		p.recordFallback(observability.StageDirections)
		logger.Info().Str("direction_source", string(source)).Msg("fallback directions substituted")
	}

	ideas, err := SynthesizeIdeas(directions, topic)
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("synthesize ideas: %w", err)
	}

	result := Assemble(Assembly{
		Topic:              topic,
		FocusArea:          req.FocusArea,
		Papers:             papers,
		Directions:         directions,
		Ideas:              ideas,
		LiteratureFallback: literatureFallback,
		DirectionSource:    source,
		GeneratedAt:        p.now(),
	})

	elapsed := time.Since(start)
	if p.recorder != nil {
		p.recorder.RecordPipelineRun(result.Degraded(), result.PapersAnalyzed, elapsed.Seconds())
	}

	logger.Info().
		Int("papers_analyzed", result.PapersAnalyzed).
		Bool("degraded", result.Degraded()).
		Dur("duration", elapsed).
		Msg("ideas generated")

	if p.notifier != nil {
		p.notifier.IdeasGenerated(ctx, &result)
	}

	return result, nil
}

func (p *Pipeline) invoke(ctx context.Context, prompt string) llm.Outcome {
	if p.invoker == nil {
		return llm.FailureOutcome(llm.FailureTransport, 0, llm.ErrMissingAPIKey)
	}
	return llm.SafeInvoke(ctx, p.invoker, prompt)
}

func (p *Pipeline) recordFallback(stage string) {
	if p.recorder != nil {
		p.recorder.RecordFallback(stage)
	}
}
