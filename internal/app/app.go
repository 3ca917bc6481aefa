// Package app assembles the service components from configuration. Both the
// HTTP server and the command-line client build on it.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helixir/research-ideas-service/internal/config"
	"github.com/helixir/research-ideas-service/internal/events"
	"github.com/helixir/research-ideas-service/internal/ideas"
	"github.com/helixir/research-ideas-service/internal/llm"
	"github.com/helixir/research-ideas-service/internal/observability"
	"github.com/helixir/research-ideas-service/internal/papersources"
	"github.com/helixir/research-ideas-service/internal/papersources/arxiv"
	"github.com/helixir/research-ideas-service/internal/trends"
)

// Components are the wired collaborators of one service instance.
type Components struct {
	// Source is nil when the literature source is disabled.
	Source    papersources.PaperSource
	Invoker   llm.Invoker
	Pipeline  *ideas.Pipeline
	Trends    *trends.Analyzer
	Publisher *events.Publisher
}

// Close releases resources held by the components.
func (c *Components) Close() error {
	if c.Publisher != nil {
		return c.Publisher.Close()
	}
	return nil
}

// Build wires the components described by cfg. metrics may be nil.
func Build(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger zerolog.Logger) (*Components, error) {
	c := &Components{}

	if cfg.PaperSources.ArXiv.Enabled {
		arxivCfg := arxiv.Config{
			BaseURL:    cfg.PaperSources.ArXiv.BaseURL,
			Timeout:    cfg.PaperSources.ArXiv.Timeout,
			RateLimit:  cfg.PaperSources.ArXiv.RateLimit,
			MaxRetries: cfg.PaperSources.ArXiv.MaxRetries,
		}
		if metrics != nil {
			arxivCfg.Observer = metrics
		}
		c.Source = arxiv.New(arxivCfg)
		c.Trends = trends.NewAnalyzer(c.Source, logger)
	} else {
		logger.Warn().Msg("arXiv source disabled, ideas will be generated from synthetic papers")
	}

	invoker, err := llm.NewInvoker(ctx, FactoryConfig(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM invoker: %w", err)
	}
	if cfg.LLM.ActiveAPIKey() == "" {
		logger.Warn().
			Str("provider", cfg.LLM.Provider).
			Str("env", config.APIKeyEnv(cfg.LLM.Provider)).
			Msg("no API key configured, model calls will fail and fallback directions will be used")
	}

	var recorder llm.Recorder
	if metrics != nil {
		recorder = metrics
	}
	c.Invoker = llm.NewInstrumented(invoker, recorder, logger)

	opts := []ideas.Option{ideas.WithLiteratureTimeout(cfg.PaperSources.ArXiv.SearchTimeout)}
	if metrics != nil {
		opts = append(opts, ideas.WithRecorder(metrics))
	}

	if cfg.Kafka.Enabled {
		kafkaCfg := events.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}
		var eventRecorder events.Recorder
		if metrics != nil {
			eventRecorder = metrics
		}
		c.Publisher = events.NewPublisher(events.NewKafkaWriter(kafkaCfg), kafkaCfg, eventRecorder, logger)
		opts = append(opts, ideas.WithNotifier(c.Publisher))
		logger.Info().
			Strs("brokers", kafkaCfg.Brokers).
			Str("topic", kafkaCfg.Topic).
			Msg("event publishing enabled")
	}

	c.Pipeline = ideas.NewPipeline(c.Source, c.Invoker, logger, opts...)

	return c, nil
}

// FactoryConfig maps the LLM configuration section onto the invoker factory.
func FactoryConfig(cfg config.LLMConfig) llm.FactoryConfig {
	return llm.FactoryConfig{
		Provider: cfg.Provider,
		Params: llm.GenerationParams{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		Timeout: cfg.Timeout,
		Gemini: llm.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey:  cfg.Anthropic.APIKey,
			Model:   cfg.Anthropic.Model,
			BaseURL: cfg.Anthropic.BaseURL,
		},
	}
}
