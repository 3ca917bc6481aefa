package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/ideas"
)

// generateOutput is the JSON document printed by the generate command.
type generateOutput struct {
	Topic              string                     `json:"topic"`
	FocusArea          string                     `json:"focus_area"`
	PapersAnalyzed     int                        `json:"papers_analyzed"`
	ResearchDirections []domain.ResearchDirection `json:"research_directions"`
	Ideas              []domain.ResearchIdea      `json:"ideas"`
	LiteratureFallback bool                       `json:"literature_fallback"`
	DirectionsFallback bool                       `json:"directions_fallback"`
	GeneratedAt        string                     `json:"generated_at"`
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate three research ideas for a topic",
		Long: `Generate retrieves related arXiv papers, asks the configured model for three
research directions and expands each into a full research idea document.
Unavailable services are replaced by fallback content; the output flags
which stages were degraded.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().String("topic", "", "research topic (required)")
	cmd.Flags().String("focus-area", "", "optional focus area")
	cmd.Flags().Int("num-papers", 0, "papers to retrieve (default from config, at most 10)")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	focusArea, _ := cmd.Flags().GetString("focus-area")
	numPapers, _ := cmd.Flags().GetInt("num-papers")

	cfg, components, _, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer components.Close()

	if numPapers <= 0 {
		numPapers = cfg.Pipeline.DefaultPapers
	}
	numPapers = min(numPapers, cfg.Pipeline.MaxPapers)

	result, err := components.Pipeline.Generate(commandContext(cmd), ideas.Request{
		Topic:     topic,
		FocusArea: focusArea,
		NumPapers: numPapers,
	})
	if err != nil {
		return fmt.Errorf("generate ideas: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), generateOutput{
		Topic:              result.Topic,
		FocusArea:          result.FocusArea,
		PapersAnalyzed:     result.PapersAnalyzed,
		ResearchDirections: result.Directions[:],
		Ideas:              result.Ideas[:],
		LiteratureFallback: result.LiteratureFallback,
		DirectionsFallback: result.DirectionsFallback,
		GeneratedAt:        result.GeneratedAtString(),
	})
}
