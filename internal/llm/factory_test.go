package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoker(t *testing.T) {
	ctx := context.Background()

	t.Run("gemini", func(t *testing.T) {
		inv, err := NewInvoker(ctx, FactoryConfig{
			Provider: "gemini",
			Params:   DefaultGenerationParams(),
			Timeout:  time.Second,
			Gemini:   GeminiConfig{APIKey: "k", Model: "gemini-x", BaseURL: "http://127.0.0.1:1"},
		})
		require.NoError(t, err)
		assert.IsType(t, &GeminiInvoker{}, inv)
		assert.Equal(t, "gemini", inv.Provider())
		assert.Equal(t, "gemini-x", inv.Model())
	})

	t.Run("gemini without key degrades instead of failing", func(t *testing.T) {
		inv, err := NewInvoker(ctx, FactoryConfig{Provider: "gemini"})
		require.NoError(t, err)
		assert.Equal(t, "gemini", inv.Provider())
		assert.Equal(t, defaultGeminiModel, inv.Model())

		out := inv.Invoke(ctx, "p")
		assert.Equal(t, FailureTransport, out.Kind())
		assert.ErrorIs(t, out.Err(), ErrMissingAPIKey)
	})

	t.Run("openai", func(t *testing.T) {
		inv, err := NewInvoker(ctx, FactoryConfig{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}})
		require.NoError(t, err)
		assert.IsType(t, &OpenAIInvoker{}, inv)
	})

	t.Run("anthropic", func(t *testing.T) {
		inv, err := NewInvoker(ctx, FactoryConfig{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}})
		require.NoError(t, err)
		assert.IsType(t, &AnthropicInvoker{}, inv)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		inv, err := NewInvoker(ctx, FactoryConfig{Provider: "mistral"})
		require.Error(t, err)
		assert.Nil(t, inv)
		assert.Contains(t, err.Error(), `unsupported LLM provider: "mistral"`)
	})
}
