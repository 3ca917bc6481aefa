package llm

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubInvoker struct {
	out   Outcome
	calls int
}

func (s *stubInvoker) Invoke(context.Context, string) Outcome {
	s.calls++
	return s.out
}
func (s *stubInvoker) Provider() string { return "stub" }
func (s *stubInvoker) Model() string    { return "stub-1" }

type recordedCall struct {
	provider string
	kind     string
}

type fakeRecorder struct {
	requests []recordedCall
	failures []recordedCall
}

func (f *fakeRecorder) RecordLLMRequest(provider, model string, _ float64) {
	f.requests = append(f.requests, recordedCall{provider: provider, kind: model})
}

func (f *fakeRecorder) RecordLLMFailure(provider, kind string) {
	f.failures = append(f.failures, recordedCall{provider: provider, kind: kind})
}

func TestInstrumented(t *testing.T) {
	t.Run("success records one request", func(t *testing.T) {
		next := &stubInvoker{out: TextOutcome("{}")}
		rec := &fakeRecorder{}
		inv := NewInstrumented(next, rec, zerolog.Nop())

		out := inv.Invoke(context.Background(), "p")

		assert.False(t, out.Failed())
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, []recordedCall{{provider: "stub", kind: "stub-1"}}, rec.requests)
		assert.Empty(t, rec.failures)
		assert.Equal(t, "stub", inv.Provider())
		assert.Equal(t, "stub-1", inv.Model())
	})

	t.Run("failure is counted by kind and logged", func(t *testing.T) {
		var buf bytes.Buffer
		next := &stubInvoker{out: FailureOutcome(FailureTimeout, 0, context.DeadlineExceeded)}
		rec := &fakeRecorder{}
		inv := NewInstrumented(next, rec, zerolog.New(&buf))

		out := inv.Invoke(context.Background(), "p")

		assert.Equal(t, FailureTimeout, out.Kind())
		assert.Equal(t, []recordedCall{{provider: "stub", kind: "timeout"}}, rec.failures)
		assert.Contains(t, buf.String(), `"failure_kind":"timeout"`)
		assert.Contains(t, buf.String(), `"component":"llm"`)
	})

	t.Run("panic becomes transport error", func(t *testing.T) {
		rec := &fakeRecorder{}
		inv := NewInstrumented(panickingInvoker{}, rec, zerolog.Nop())

		out := inv.Invoke(context.Background(), "p")

		assert.Equal(t, FailureTransport, out.Kind())
		assert.Equal(t, []recordedCall{{provider: "test", kind: "transport-error"}}, rec.failures)
	})

	t.Run("nil recorder is allowed", func(t *testing.T) {
		inv := NewInstrumented(&stubInvoker{out: TextOutcome("x")}, nil, zerolog.Nop())
		assert.False(t, inv.Invoke(context.Background(), "p").Failed())
	})
}
