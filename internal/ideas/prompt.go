package ideas

import (
	"fmt"
	"strings"

	"github.com/helixir/research-ideas-service/internal/domain"
)

// DefaultFocusArea is used in the prompt when no focus area is given.
const DefaultFocusArea = "General advancement"

// promptPaperLimit is the number of leading papers embedded in the prompt.
const promptPaperLimit = 5

// ComposePrompt builds the single prompt asking the model for three research
// directions as a JSON object. papers is the full literature context; only
// its count and the leading five papers appear in the prompt.
func ComposePrompt(topic, focusArea string, papers []domain.Paper) string {
	if strings.TrimSpace(focusArea) == "" {
		focusArea = DefaultFocusArea
	}

	var b strings.Builder

	fmt.Fprintf(&b, "As a researcher in %s, analyze the following papers and identify %d research directions.\n\n", topic, domain.DirectionCount)
	fmt.Fprintf(&b, "Research Topic: %s\n", topic)
	fmt.Fprintf(&b, "Focus Area: %s\n\n", focusArea)

	if len(papers) > 0 {
		fmt.Fprintf(&b, "Research analysis for %s:\n", topic)
		fmt.Fprintf(&b, "Total papers analyzed: %d\n\n", len(papers))

		for i, p := range papers {
			if i == promptPaperLimit {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
			fmt.Fprintf(&b, "   Authors: %s\n", p.AuthorLine())
			fmt.Fprintf(&b, "   Abstract: %s\n\n", p.Abstract)
		}
	}

	fmt.Fprintf(&b, "Provide %d research directions in JSON format:\n\n", domain.DirectionCount)
	b.WriteString("{\n  \"research_directions\": [\n")
	for i := 1; i <= domain.DirectionCount; i++ {
		b.WriteString("    {\n")
		fmt.Fprintf(&b, "      \"direction\": \"Direction %d Name\",\n", i)
		b.WriteString("      \"rationale\": \"Why this is important\",\n")
		b.WriteString("      \"gap_addressed\": \"What gap this addresses\"\n")
		if i < domain.DirectionCount {
			b.WriteString("    },\n")
		} else {
			b.WriteString("    }\n")
		}
	}
	b.WriteString("  ]\n}\n\n")
	b.WriteString("Respond only in valid JSON format.")

	return b.String()
}
