package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// FactoryConfig holds the parameters needed to create an Invoker.
// This is defined in the llm package to avoid importing the config package,
// keeping the llm package free of infrastructure dependencies.
type FactoryConfig struct {
	// Provider is the LLM provider name ("gemini", "openai" or "anthropic").
	Provider string
	// Params are the generation parameters sent with every request.
	Params GenerationParams
	// Timeout bounds each invocation.
	Timeout time.Duration
	// Gemini contains Gemini-specific settings.
	Gemini GeminiConfig
	// OpenAI contains OpenAI-specific settings.
	OpenAI OpenAIConfig
	// Anthropic contains Anthropic-specific settings.
	Anthropic AnthropicConfig
}

// NewInvoker creates an Invoker based on the configuration.
// An unsupported provider is an error. A missing API key is not: the
// returned invoker then fails every call with a transport-error outcome.
func NewInvoker(ctx context.Context, cfg FactoryConfig) (Invoker, error) {
	switch cfg.Provider {
	case "gemini", "":
		inv, err := NewGeminiInvoker(ctx, cfg.Gemini, cfg.Params, cfg.Timeout)
		if errors.Is(err, ErrMissingAPIKey) {
			model := cfg.Gemini.Model
			if model == "" {
				model = defaultGeminiModel
			}
			return unconfiguredInvoker{provider: "gemini", model: model}, nil
		}
		if err != nil {
			return nil, err
		}
		return inv, nil
	case "openai":
		return NewOpenAIInvoker(cfg.OpenAI, cfg.Params, cfg.Timeout), nil
	case "anthropic":
		return NewAnthropicInvoker(cfg.Anthropic, cfg.Params, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// unconfiguredInvoker stands in for a provider without credentials.
type unconfiguredInvoker struct {
	provider string
	model    string
}

func (u unconfiguredInvoker) Invoke(context.Context, string) Outcome {
	return FailureOutcome(FailureTransport, 0, fmt.Errorf("%s: %w", u.provider, ErrMissingAPIKey))
}

func (u unconfiguredInvoker) Provider() string { return u.provider }

func (u unconfiguredInvoker) Model() string { return u.model }
