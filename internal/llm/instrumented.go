package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Recorder receives per-invocation telemetry.
// *observability.Metrics satisfies this interface.
type Recorder interface {
	RecordLLMRequest(provider, model string, durationSeconds float64)
	RecordLLMFailure(provider, kind string)
}

// Instrumented decorates an Invoker with metrics, logging and panic recovery.
type Instrumented struct {
	next     Invoker
	recorder Recorder
	logger   zerolog.Logger
}

// NewInstrumented wraps next. recorder may be nil.
func NewInstrumented(next Invoker, recorder Recorder, logger zerolog.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		recorder: recorder,
		logger: logger.With().
			Str("component", "llm").
			Str("provider", next.Provider()).
			Str("model", next.Model()).
			Logger(),
	}
}

// Invoke calls the wrapped invoker once and records the outcome.
func (i *Instrumented) Invoke(ctx context.Context, prompt string) Outcome {
	start := time.Now()
	out := SafeInvoke(ctx, i.next, prompt)
	elapsed := time.Since(start)

	if i.recorder != nil {
		i.recorder.RecordLLMRequest(i.next.Provider(), i.next.Model(), elapsed.Seconds())
		if out.Failed() {
			i.recorder.RecordLLMFailure(i.next.Provider(), string(out.Kind()))
		}
	}

	if out.Failed() {
		i.logger.Warn().
			Err(out.Err()).
			Str("failure_kind", string(out.Kind())).
			Int("status_code", out.StatusCode()).
			Dur("duration", elapsed).
			Msg("model invocation failed")
		return out
	}

	raw, _ := out.Text()
	i.logger.Debug().
		Int("prompt_bytes", len(prompt)).
		Int("response_bytes", len(raw)).
		Dur("duration", elapsed).
		Msg("model invocation succeeded")
	return out
}

// Provider returns the wrapped provider name.
func (i *Instrumented) Provider() string {
	return i.next.Provider()
}

// Model returns the wrapped model identifier.
func (i *Instrumented) Model() string {
	return i.next.Model()
}
