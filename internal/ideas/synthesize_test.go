package ideas

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/helixir/research-ideas-service/internal/domain"
)

func TestSynthesizeIdea(t *testing.T) {
	dir := domain.ResearchDirection{Direction: "Federated Learning", Rationale: "r", GapAddressed: "g"}

	idea := SynthesizeIdea(dir, "healthcare AI", 1)

	require.NoError(t, idea.Validate())
	assert.Equal(t, "Federated Learning: Advanced healthcare AI Framework", idea.Title)
	assert.Contains(t, idea.Overview.Background, "framework for federated learning in healthcare AI")
	assert.Len(t, idea.Overview.ExpectedOutcomes, 4)
	assert.Len(t, idea.Methodology.AnalysisTechniques, 2)

	phases := idea.Methodology.ExperimentalSetup.Phases
	require.Len(t, phases, 4)
	durations := make([]string, len(phases))
	for i, p := range phases {
		durations[i] = p.Duration
	}
	assert.Equal(t, []string{"3 months", "6 months", "9 months", "6 months"}, durations)

	timeline := idea.Feasibility.Timeline
	assert.Equal(t, "24 months", timeline.TotalDuration)
	frames := make([]string, len(timeline.Milestones))
	for i, m := range timeline.Milestones {
		frames[i] = m.Timeframe
	}
	assert.Equal(t, []string{"Month 3", "Month 9", "Month 18", "Month 24"}, frames)

	assert.Len(t, idea.Feasibility.RiskAssessment, 3)
	assert.Contains(t, idea.Impact.PracticalApplications[0], "healthcare AI systems")
	assert.NotContains(t, idea.Impact.EconomicPotential, "{topic}")
}

func TestSynthesizeIdea_BlankDirectionName(t *testing.T) {
	idea := SynthesizeIdea(domain.ResearchDirection{Direction: "  "}, "robotics", 2)

	require.NoError(t, idea.Validate())
	assert.Equal(t, "Research Direction 2: Advanced robotics Framework", idea.Title)
	assert.Contains(t, idea.Overview.Novelty, "research direction 2")
}

func TestSynthesizeIdeas(t *testing.T) {
	defer goleak.VerifyNone(t)

	dirs := FallbackDirections("robotics")
	ideas, err := SynthesizeIdeas(dirs, "robotics")

	require.NoError(t, err)
	for i, idea := range ideas {
		assert.NoError(t, idea.Validate())
		assert.True(t, strings.HasPrefix(idea.Title, dirs[i].Direction+":"), "idea %d follows its direction", i)
	}
}

func TestSynthesizeIdeas_Deterministic(t *testing.T) {
	dirs := FallbackDirections("climate modeling")

	first, err := SynthesizeIdeas(dirs, "climate modeling")
	require.NoError(t, err)
	second, err := SynthesizeIdeas(dirs, "climate modeling")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expansion differs between runs (-first +second):\n%s", diff)
	}
}
