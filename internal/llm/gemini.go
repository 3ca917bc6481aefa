package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig holds the parameters needed to create a Gemini invoker.
type GeminiConfig struct {
	// APIKey is the Gemini API key.
	APIKey string
	// Model is the model identifier (e.g., "gemini-2.5-flash").
	Model string
	// BaseURL overrides the Gemini API endpoint (empty means default).
	BaseURL string
}

// GeminiInvoker implements Invoker using the Gemini generateContent API.
type GeminiInvoker struct {
	client  *genai.Client
	model   string
	params  GenerationParams
	timeout time.Duration
}

// NewGeminiInvoker creates a Gemini invoker. The request carries the prompt
// as the only content part together with the generation parameters.
func NewGeminiInvoker(ctx context.Context, cfg GeminiConfig, params GenerationParams, timeout time.Duration) (*GeminiInvoker, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &GeminiInvoker{
		client:  client,
		model:   model,
		params:  params,
		timeout: timeout,
	}, nil
}

// Invoke sends prompt to Gemini exactly once.
func (g *GeminiInvoker) Invoke(ctx context.Context, prompt string) Outcome {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.params.Temperature)),
		TopK:            genai.Ptr(float32(g.params.TopK)),
		TopP:            genai.Ptr(float32(g.params.TopP)),
		MaxOutputTokens: int32(g.params.MaxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, config)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return FailureOutcome(FailureTimeout, 0, err)
		}
		return classifyError(normalizeGeminiError(err))
	}

	text := firstCandidateText(resp)
	if strings.TrimSpace(text) == "" {
		return FailureOutcome(FailureEmptyResponse, 0, errors.New("gemini: response contains no candidate text"))
	}
	return TextOutcome(text)
}

// Provider returns the name of the LLM provider.
func (g *GeminiInvoker) Provider() string {
	return "gemini"
}

// Model returns the model identifier being used.
func (g *GeminiInvoker) Model() string {
	return g.model
}

// firstCandidateText reads candidates[0].content.parts[0].text.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}

// normalizeGeminiError converts genai API errors to *APIError so they
// classify as http-error with the returned status.
func normalizeGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Provider: "gemini", StatusCode: apiErr.Code, Message: apiErr.Message, Type: apiErr.Status}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &APIError{Provider: "gemini", StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, Type: apiErrPtr.Status}
	}
	return err
}
