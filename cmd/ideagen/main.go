// Package main is the entry point for the ideagen CLI, which runs the
// research ideas pipeline and literature queries once from the shell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helixir/research-ideas-service/internal/app"
	"github.com/helixir/research-ideas-service/internal/config"
	"github.com/helixir/research-ideas-service/internal/observability"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Results go to the command's output
// stream as JSON; logs go to stderr.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "ideagen",
		Short:   "Generate research ideas from arXiv literature",
		Version: version,
		Long: `ideagen runs the research ideas pipeline once without starting the HTTP
service. It reads the same configuration as the server: defaults, an optional
config.yaml and IDEAS_* environment variables.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default: ./config.yaml, ./config/config.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")

	root.AddCommand(newGenerateCmd(), newSearchCmd(), newTrendsCmd())
	return root
}

// loadComponents loads configuration from the persistent flags and wires
// the service components. Metrics are not collected from the CLI.
func loadComponents(cmd *cobra.Command) (*config.Config, *app.Components, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	logCfg := observability.LoggingConfig{
		Level:      "warn",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: cfg.Logging.TimeFormat,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger := observability.NewLogger(logCfg).With().Str("component", "ideagen").Logger()

	components, err := app.Build(commandContext(cmd), cfg, nil, logger)
	if err != nil {
		return nil, nil, logger, err
	}
	return cfg, components, logger, nil
}

// commandContext returns the command context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
