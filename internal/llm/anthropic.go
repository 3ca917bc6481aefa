package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// anthropicAPIVersion is the Anthropic API version header value.
	anthropicAPIVersion = "2023-06-01"

	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
)

// messagesRequest is the request body for the Anthropic Messages API.
type messagesRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	TopK        int                `json:"top_k,omitempty"`
	TopP        float64            `json:"top_p,omitempty"`
}

// anthropicMessage represents a single message in the Anthropic Messages API.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// contentBlock represents a content block in the Anthropic Messages API response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// messagesResponse is the response body from the Anthropic Messages API.
type messagesResponse struct {
	ID         string         `json:"id"`
	Content    []contentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
}

// anthropicAPIErrorDetail represents the nested error object in an Anthropic API error response.
type anthropicAPIErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// anthropicErrorResponse wraps the error payload from the Anthropic API.
type anthropicErrorResponse struct {
	Type  string                  `json:"type"`
	Error anthropicAPIErrorDetail `json:"error"`
}

// AnthropicConfig holds the parameters needed to create an Anthropic invoker.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key.
	APIKey string
	// Model is the model identifier.
	Model string
	// BaseURL is the API base URL (empty means default).
	BaseURL string
}

// AnthropicInvoker implements Invoker using the Anthropic Messages API.
type AnthropicInvoker struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	params     GenerationParams
	timeout    time.Duration
}

// NewAnthropicInvoker creates a new Anthropic invoker.
func NewAnthropicInvoker(cfg AnthropicConfig, params GenerationParams, timeout time.Duration) *AnthropicInvoker {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &AnthropicInvoker{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		params:  params,
		timeout: timeout,
	}
}

// Invoke sends prompt as a single user message and returns the first text
// content block.
func (p *AnthropicInvoker) Invoke(ctx context.Context, prompt string) Outcome {
	if p.apiKey == "" {
		return FailureOutcome(FailureTransport, 0, ErrMissingAPIKey)
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	apiReq := messagesRequest{
		Model:       p.model,
		MaxTokens:   p.params.MaxOutputTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: p.params.Temperature,
		TopK:        p.params.TopK,
		TopP:        p.params.TopP,
	}

	resp, err := p.sendRequest(ctx, apiReq)
	if err != nil {
		return classifyError(err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return TextOutcome(block.Text)
		}
	}
	return FailureOutcome(FailureEmptyResponse, 0, errors.New("anthropic: response contains no text content blocks"))
}

// Provider returns the provider name.
func (p *AnthropicInvoker) Provider() string {
	return "anthropic"
}

// Model returns the model identifier being used.
func (p *AnthropicInvoker) Model() string {
	return p.model
}

// sendRequest sends a single request to the Anthropic Messages API.
// A body that does not decode yields an empty response.
func (p *AnthropicInvoker) sendRequest(ctx context.Context, apiReq messagesRequest) (*messagesResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to marshal request: %w", err)
	}

	endpoint := p.baseURL + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, parseAnthropicAPIError(httpResp.StatusCode, respBody)
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return &messagesResponse{}, nil
	}

	return &resp, nil
}

// parseAnthropicAPIError parses an Anthropic API error from the response status code and body.
func parseAnthropicAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Provider:   "anthropic",
		StatusCode: statusCode,
		Message:    string(body),
	}

	var errResp anthropicErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
		apiErr.Type = errResp.Error.Type
	}

	return apiErr
}
