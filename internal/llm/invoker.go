// Package llm sends a single prompt to a generative text service and reports
// the result as a tagged Outcome.
//
// The research ideas pipeline treats the model as unreliable: an Invoker
// never returns a Go error and never panics. Every call yields either the raw
// response text or a Failure describing why no text is available, and the
// caller decides how to degrade.
//
// Example usage:
//
//	inv, err := llm.NewInvoker(ctx, llm.FactoryConfig{Provider: "gemini", Gemini: gemCfg})
//	out := llm.SafeInvoke(ctx, inv, prompt)
//	if raw, ok := out.Text(); ok {
//		// parse raw
//	}
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// FailureKind classifies why an invocation produced no text.
type FailureKind string

const (
	// FailureTimeout means the call exceeded its deadline.
	FailureTimeout FailureKind = "timeout"

	// FailureTransport means no HTTP response was received.
	FailureTransport FailureKind = "transport-error"

	// FailureHTTP means the service answered with a non-2xx status.
	FailureHTTP FailureKind = "http-error"

	// FailureEmptyResponse means a 2xx response carried no usable text.
	FailureEmptyResponse FailureKind = "empty-response"
)

// Default generation parameters and timeout for one invocation.
const (
	DefaultTemperature     = 0.7
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 4096
	DefaultTimeout         = 40 * time.Second
)

// GenerationParams are the sampling parameters sent with every request.
type GenerationParams struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// DefaultGenerationParams returns temperature 0.7, top-k 40, top-p 0.95 and
// 4096 max output tokens.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// Outcome is the result of one invocation: either Text or a Failure.
// The zero value is an empty-response failure.
type Outcome struct {
	text   string
	ok     bool
	kind   FailureKind
	status int
	err    error
}

// TextOutcome returns a successful outcome carrying raw model text.
func TextOutcome(raw string) Outcome {
	return Outcome{text: raw, ok: true}
}

// FailureOutcome returns a failed outcome. status is only meaningful for
// FailureHTTP; err is kept for logging.
func FailureOutcome(kind FailureKind, status int, err error) Outcome {
	return Outcome{kind: kind, status: status, err: err}
}

// Text returns the raw response text and true for a successful outcome.
func (o Outcome) Text() (string, bool) {
	return o.text, o.ok
}

// Failed reports whether the outcome is a Failure.
func (o Outcome) Failed() bool {
	return !o.ok
}

// Kind returns the failure kind, or "" for a successful outcome.
func (o Outcome) Kind() FailureKind {
	if o.ok {
		return ""
	}
	if o.kind == "" {
		return FailureEmptyResponse
	}
	return o.kind
}

// StatusCode returns the HTTP status of an http-error failure.
func (o Outcome) StatusCode() int {
	return o.status
}

// Err returns the underlying error of a failure, if any.
func (o Outcome) Err() error {
	return o.err
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.ok {
		return fmt.Sprintf("text(%d bytes)", len(o.text))
	}
	if o.Kind() == FailureHTTP {
		return fmt.Sprintf("failure(%s %d)", o.Kind(), o.status)
	}
	return fmt.Sprintf("failure(%s)", o.Kind())
}

// Invoker sends one prompt to a generative text service.
type Invoker interface {
	// Invoke performs exactly one request. It never returns an error;
	// failures are reported in the Outcome.
	Invoke(ctx context.Context, prompt string) Outcome

	// Provider returns the provider name (e.g. "gemini").
	Provider() string

	// Model returns the model identifier in use.
	Model() string
}

// SafeInvoke calls inv and converts a panic into a transport-error outcome.
func SafeInvoke(ctx context.Context, inv Invoker, prompt string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = FailureOutcome(FailureTransport, 0, fmt.Errorf("%s: panic during invocation: %v", inv.Provider(), r))
		}
	}()
	return inv.Invoke(ctx, prompt)
}

// classifyError maps a request error to a failure outcome.
func classifyError(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureOutcome(FailureTimeout, 0, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureOutcome(FailureTimeout, 0, err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		return FailureOutcome(FailureHTTP, apiErr.StatusCode, err)
	}
	return FailureOutcome(FailureTransport, 0, err)
}

// withTimeout bounds ctx by timeout, falling back to DefaultTimeout.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
