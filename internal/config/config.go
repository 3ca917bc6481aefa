// Package config provides configuration management for the research ideas service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "IDEAS"

// Config holds all configuration for the research ideas service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// LLM contains generative model settings.
	LLM LLMConfig `mapstructure:"llm"`
	// Pipeline contains idea generation bounds.
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	// Kafka contains event publisher settings.
	Kafka KafkaConfig `mapstructure:"kafka"`
	// PaperSources contains literature source settings.
	PaperSources PaperSourcesConfig `mapstructure:"paper_sources"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response. It must
	// exceed the model timeout plus the literature search budget.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr, discard).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace"`
}

// LLMConfig holds generative model configuration.
type LLMConfig struct {
	// Provider is the model provider (gemini, openai, anthropic).
	Provider string `mapstructure:"provider"`
	// Timeout bounds a single model call.
	Timeout time.Duration `mapstructure:"timeout"`
	// Temperature is the sampling temperature.
	Temperature float64 `mapstructure:"temperature"`
	// TopK limits sampling to the K most likely tokens.
	TopK int `mapstructure:"top_k"`
	// TopP is the nucleus sampling threshold.
	TopP float64 `mapstructure:"top_p"`
	// MaxOutputTokens bounds the response length.
	MaxOutputTokens int `mapstructure:"max_output_tokens"`
	// Gemini contains Gemini-specific settings.
	Gemini ProviderConfig `mapstructure:"gemini"`
	// OpenAI contains OpenAI-specific settings.
	OpenAI ProviderConfig `mapstructure:"openai"`
	// Anthropic contains Anthropic-specific settings.
	Anthropic ProviderConfig `mapstructure:"anthropic"`
}

// ProviderConfig holds settings for one model provider.
type ProviderConfig struct {
	// APIKey is loaded only from the environment.
	APIKey string `mapstructure:"-"`
	// Model is the model identifier.
	Model string `mapstructure:"model"`
	// BaseURL overrides the API endpoint.
	BaseURL string `mapstructure:"base_url"`
}

// PipelineConfig holds idea generation bounds.
type PipelineConfig struct {
	// DefaultPapers is used when a request omits num_papers.
	DefaultPapers int `mapstructure:"default_papers"`
	// MaxPapers caps num_papers.
	MaxPapers int `mapstructure:"max_papers"`
}

// KafkaConfig holds Kafka publisher settings.
type KafkaConfig struct {
	// Enabled turns on ideas.generated event publication.
	Enabled bool `mapstructure:"enabled"`
	// Brokers is the list of Kafka broker addresses.
	Brokers []string `mapstructure:"brokers"`
	// Topic is the Kafka topic events are written to.
	Topic string `mapstructure:"topic"`
	// BatchSize is the writer batch size.
	BatchSize int `mapstructure:"batch_size"`
	// BatchTimeout is the maximum time a partial batch is held.
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	// WriteTimeout bounds a single publish.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PaperSourcesConfig holds configuration for literature sources.
type PaperSourcesConfig struct {
	ArXiv PaperSourceConfig `mapstructure:"arxiv"`
}

// PaperSourceConfig holds configuration for a single paper source API.
type PaperSourceConfig struct {
	// Enabled turns the source on. A disabled source makes every run use
	// synthetic papers.
	Enabled bool `mapstructure:"enabled"`
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds a single request attempt.
	Timeout time.Duration `mapstructure:"timeout"`
	// SearchTimeout bounds a whole search, retries included.
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
	// RateLimit is the maximum requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// MaxRetries bounds retries of 429 and 5xx responses. Negative disables.
	MaxRetries int `mapstructure:"max_retries"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from defaults, an optional config.yaml and
// environment variables, in increasing precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/research-ideas-service")
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loadSecrets(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadSecrets populates secret fields exclusively from environment variables.
// These fields are tagged with mapstructure:"-" to prevent loading from config files.
func loadSecrets(cfg *Config) {
	cfg.LLM.Gemini.APIKey = os.Getenv(EnvPrefix + "_LLM_GEMINI_API_KEY")
	cfg.LLM.OpenAI.APIKey = os.Getenv(EnvPrefix + "_LLM_OPENAI_API_KEY")
	cfg.LLM.Anthropic.APIKey = os.Getenv(EnvPrefix + "_LLM_ANTHROPIC_API_KEY")
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "research_ideas")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "40s")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_k", 40)
	v.SetDefault("llm.top_p", 0.95)
	v.SetDefault("llm.max_output_tokens", 4096)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("llm.anthropic.base_url", "https://api.anthropic.com")

	v.SetDefault("pipeline.default_papers", 10)
	v.SetDefault("pipeline.max_papers", 10)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "events.research_ideas_service")
	v.SetDefault("kafka.batch_size", 1)
	v.SetDefault("kafka.batch_timeout", "10ms")
	v.SetDefault("kafka.write_timeout", "5s")

	v.SetDefault("paper_sources.arxiv.enabled", true)
	v.SetDefault("paper_sources.arxiv.base_url", "https://export.arxiv.org/api")
	v.SetDefault("paper_sources.arxiv.timeout", "15s")
	v.SetDefault("paper_sources.arxiv.search_timeout", "45s")
	v.SetDefault("paper_sources.arxiv.rate_limit", 3.0) // arXiv recommends max 3 req/sec
	v.SetDefault("paper_sources.arxiv.max_retries", 2)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort == c.Server.HTTPPort {
		return fmt.Errorf("metrics port must differ from HTTP port: %d", c.Server.HTTPPort)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM temperature must be between 0 and 2")
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		return fmt.Errorf("LLM top_p must be in (0, 1]")
	}
	if c.LLM.TopK <= 0 {
		return fmt.Errorf("LLM top_k must be positive")
	}
	if c.LLM.MaxOutputTokens <= 0 {
		return fmt.Errorf("LLM max_output_tokens must be positive")
	}

	if c.Pipeline.MaxPapers < 1 || c.Pipeline.MaxPapers > 10 {
		return fmt.Errorf("pipeline max_papers must be between 1 and 10")
	}
	if c.Pipeline.DefaultPapers < 1 || c.Pipeline.DefaultPapers > c.Pipeline.MaxPapers {
		return fmt.Errorf("pipeline default_papers must be between 1 and max_papers (%d)", c.Pipeline.MaxPapers)
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka topic is required when kafka is enabled")
		}
	}

	if c.PaperSources.ArXiv.Enabled {
		if c.PaperSources.ArXiv.BaseURL == "" {
			return fmt.Errorf("arxiv base_url is required when arxiv is enabled")
		}
		if c.PaperSources.ArXiv.RateLimit <= 0 {
			return fmt.Errorf("arxiv rate_limit must be positive")
		}
		if c.PaperSources.ArXiv.SearchTimeout <= 0 {
			return fmt.Errorf("arxiv search_timeout must be positive")
		}
		if budget := c.PaperSources.ArXiv.SearchTimeout + c.LLM.Timeout; c.Server.WriteTimeout <= budget {
			return fmt.Errorf("server write_timeout (%s) must exceed arxiv search_timeout plus llm timeout (%s)",
				c.Server.WriteTimeout, budget)
		}
	}

	return nil
}

// APIKeyEnv returns the environment variable holding the API key of provider.
func APIKeyEnv(provider string) string {
	return EnvPrefix + "_LLM_" + strings.ToUpper(provider) + "_API_KEY"
}

// ActiveAPIKey returns the API key of the configured provider.
func (c *LLMConfig) ActiveAPIKey() string {
	switch strings.ToLower(c.Provider) {
	case "openai":
		return c.OpenAI.APIKey
	case "anthropic":
		return c.Anthropic.APIKey
	default:
		return c.Gemini.APIKey
	}
}
