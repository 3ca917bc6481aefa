package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with default config", func(t *testing.T) {
		cfg := DefaultLoggingConfig()
		logger := NewLogger(cfg)

		// Logger should be valid (non-zero)
		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with debug level", func(t *testing.T) {
		cfg := LoggingConfig{
			Level:  "debug",
			Format: "json",
			Output: "stdout",
		}
		logger := NewLogger(cfg)

		// Debug level should be enabled
		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		cfg := LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		}
		logger := NewLogger(cfg)

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates discarding logger", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "info", Output: "discard"})

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})

	t.Run("creates logger with pretty format", func(t *testing.T) {
		cfg := LoggingConfig{
			Level:  "info",
			Format: "pretty",
			Output: "stderr",
		}
		logger := NewLogger(cfg)

		assert.NotEqual(t, zerolog.Logger{}, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"TRACE", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"FATAL", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"PANIC", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLevel(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithRequestContext(t *testing.T) {
	t.Run("adds request and correlation IDs", func(t *testing.T) {
		var buf bytes.Buffer
		enriched := WithRequestContext(zerolog.New(&buf), "req-123", "corr-456")
		enriched.Info().Msg("test message")

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

		assert.Equal(t, "req-123", logEntry["request_id"])
		assert.Equal(t, "corr-456", logEntry["correlation_id"])
		assert.Equal(t, "test message", logEntry["message"])
	})

	t.Run("omits correlation ID equal to the request ID", func(t *testing.T) {
		var buf bytes.Buffer
		enriched := WithRequestContext(zerolog.New(&buf), "req-1", "req-1")
		enriched.Info().Msg("x")

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

		assert.Equal(t, "req-1", logEntry["request_id"])
		_, ok := logEntry["correlation_id"]
		assert.False(t, ok)
	})
}

func TestLoggerContextChaining(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	enriched := WithRequestContext(logger, "req-1", "")
	enriched = WithPipelineContext(enriched, "quantum computing", "error correction")
	enriched = WithSourceContext(enriched, "arxiv")
	enriched.Info().Msg("chained context")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "req-1", logEntry["request_id"])
	assert.Equal(t, "quantum computing", logEntry["topic"])
	assert.Equal(t, "error correction", logEntry["focus_area"])
	assert.Equal(t, "arxiv", logEntry["source"])
}

func TestFromContext(t *testing.T) {
	t.Run("enriches with stored identifiers", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithRequestContextFull(context.Background(), RequestContext{RequestID: "r-9", CorrelationID: "c-9"})

		logger := FromContext(ctx, zerolog.New(&buf))
		logger.Info().Msg("x")

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
		assert.Equal(t, "r-9", logEntry["request_id"])
		assert.Equal(t, "c-9", logEntry["correlation_id"])
	})

	t.Run("returns logger unchanged without identifiers", func(t *testing.T) {
		var buf bytes.Buffer
		logger := FromContext(context.Background(), zerolog.New(&buf))
		logger.Info().Msg("x")

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
		_, ok := logEntry["request_id"]
		assert.False(t, ok)
	})
}
