package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixir/research-ideas-service/internal/domain"
)

type trendsOutput struct {
	Topic    string               `json:"topic"`
	Analysis domain.TrendAnalysis `json:"analysis"`
}

func newTrendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Summarize recent publication trends for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			topic, _ := cmd.Flags().GetString("topic")

			_, components, _, err := loadComponents(cmd)
			if err != nil {
				return err
			}
			defer components.Close()
			if components.Trends == nil {
				return errSourceDisabled
			}

			resolved, analysis, err := components.Trends.Analyze(commandContext(cmd), topic)
			if err != nil {
				return fmt.Errorf("analyze trends: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), trendsOutput{Topic: resolved, Analysis: analysis})
		},
	}

	cmd.Flags().String("topic", "", "topic to analyze (default \"AI\")")
	return cmd
}
