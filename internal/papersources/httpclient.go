package papersources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Observer receives per-request telemetry from an HTTPClient.
// *observability.Metrics satisfies this interface.
type Observer interface {
	RecordSourceRequest(source string, durationSeconds float64)
	RecordSourceRequestFailed(source, errorType string)
	RecordSourceRateLimited(source string)
}

type nopObserver struct{}

func (nopObserver) RecordSourceRequest(string, float64)      {}
func (nopObserver) RecordSourceRequestFailed(string, string) {}
func (nopObserver) RecordSourceRateLimited(string)           {}

// HTTPClientConfig configures the HTTP client.
type HTTPClientConfig struct {
	// Source labels telemetry emitted by this client (e.g. "arxiv").
	Source string

	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxRetries is the maximum number of retry attempts. Negative disables retries.
	MaxRetries int

	// RetryDelay is the base delay between retries.
	RetryDelay time.Duration

	// MaxRetryDelay caps the wait a Retry-After header can ask for.
	MaxRetryDelay time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// Observer receives request telemetry. Nil discards it.
	Observer Observer
}

// HTTPClient wraps http.Client with rate limiting and retries.
// It is safe for concurrent use.
type HTTPClient struct {
	client      *http.Client
	rateLimiter *RateLimiter
	config      HTTPClientConfig
}

// NewHTTPClient creates a new HTTP client with rate limiting.
// The client waits on the rate limiter before each attempt and retries
// 429 and 5xx responses as well as network errors.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 3
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 3
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetryDelay == 0 {
		cfg.MaxRetryDelay = 5 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ResearchIdeasService/1.0"
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.BurstSize),
		config:      cfg,
	}
}

// Do executes an HTTP request with rate limiting and retries.
// Retries honor the Retry-After header up to MaxRetryDelay, and a retry
// whose wait would pass the request deadline is not attempted.
// Requests with a body must set GetBody to be retried.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	obs := c.config.Observer
	source := c.config.Source

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		obs.RecordSourceRequest(source, time.Since(start).Seconds())

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				obs.RecordSourceRequestFailed(source, "timeout")
				return nil, err
			}
			obs.RecordSourceRequestFailed(source, "transport")
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt < c.config.MaxRetries {
				if err := c.prepareRetry(req, c.config.RetryDelay); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		if !shouldRetry(resp.StatusCode) {
			if resp.StatusCode >= 400 {
				obs.RecordSourceRequestFailed(source, "http_"+strconv.Itoa(resp.StatusCode))
			}
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			obs.RecordSourceRateLimited(source)
		}
		obs.RecordSourceRequestFailed(source, "http_"+strconv.Itoa(resp.StatusCode))

		delay := c.retryDelay(resp)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
		if attempt < c.config.MaxRetries {
			if err := c.prepareRetry(req, delay); err != nil {
				return nil, err
			}
			continue
		}
		return nil, fmt.Errorf("max retries exhausted after %d attempts, last status: %d", c.config.MaxRetries+1, resp.StatusCode)
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("unexpected error: no response received")
}

// shouldRetry returns true for 429 Too Many Requests and 5xx responses.
func shouldRetry(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500 && statusCode < 600
}

// retryDelay honors Retry-After (seconds or HTTP date), capped at
// MaxRetryDelay, and otherwise falls back to the configured delay.
func (c *HTTPClient) retryDelay(resp *http.Response) time.Duration {
	return min(c.requestedDelay(resp), c.config.MaxRetryDelay)
}

func (c *HTTPClient) requestedDelay(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return c.config.RetryDelay
	}

	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return c.config.RetryDelay
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return c.config.RetryDelay
}

// prepareRetry sleeps for delay (or until the request context is done)
// and rewinds the request body. It fails at once when the request deadline
// falls before the wait is over.
func (c *HTTPClient) prepareRetry(req *http.Request, delay time.Duration) error {
	if deadline, ok := req.Context().Deadline(); ok && time.Until(deadline) < delay {
		return fmt.Errorf("retry in %s would pass the request deadline: %w", delay, context.DeadlineExceeded)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
	}

	if req.Body == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("cannot retry request: %w", err)
	}
	req.Body = body
	return nil
}
