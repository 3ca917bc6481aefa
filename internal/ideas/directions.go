package ideas

import (
	"strings"

	"github.com/helixir/research-ideas-service/internal/domain"
)

// DirectionSource reports where synthesized directions came from.
type DirectionSource string

const (
	// DirectionsFromModel means all three directions came from the model.
	DirectionsFromModel DirectionSource = "model"

	// DirectionsPadded means the model supplied fewer than three valid
	// directions and the rest were taken from the fallback triple.
	DirectionsPadded DirectionSource = "padded"

	// DirectionsFallback means the model output was unusable and the
	// fallback triple was used as is.
	DirectionsFallback DirectionSource = "fallback"
)

// Degraded reports whether fallback content was substituted.
func (s DirectionSource) Degraded() bool {
	return s != DirectionsFromModel
}

// FallbackDirections returns the deterministic direction triple for topic.
func FallbackDirections(topic string) [domain.DirectionCount]domain.ResearchDirection {
	return [domain.DirectionCount]domain.ResearchDirection{
		{
			Direction:    "Advanced " + topic + " Framework",
			Rationale:    "Need for comprehensive approach",
			GapAddressed: "Integration challenges",
		},
		{
			Direction:    "Interdisciplinary " + topic + " Research",
			Rationale:    "Cross-domain opportunities",
			GapAddressed: "Disciplinary silos",
		},
		{
			Direction:    "Practical " + topic + " Applications",
			Rationale:    "Real-world implementation",
			GapAddressed: "Theory-practice gap",
		},
	}
}

// SynthesizeDirections returns exactly three directions.
//
// The model's research_directions field is used when it is a non-empty array
// whose every entry is an object with non-empty direction, rationale and
// gap_addressed strings. The first three entries are kept; a shorter array
// is padded with the fallback entries at the missing positions. Anything
// else yields FallbackDirections(topic).
func SynthesizeDirections(ex Extraction, topic string) ([domain.DirectionCount]domain.ResearchDirection, DirectionSource) {
	fallback := FallbackDirections(topic)

	object, ok := ex.Object()
	if !ok {
		return fallback, DirectionsFallback
	}

	parsed, ok := parseDirections(object["research_directions"])
	if !ok {
		return fallback, DirectionsFallback
	}

	out := fallback
	n := copy(out[:], parsed)
	if n < domain.DirectionCount {
		return out, DirectionsPadded
	}
	return out, DirectionsFromModel
}

// parseDirections validates the research_directions value. A single invalid
// entry rejects the whole array.
func parseDirections(value any) ([]domain.ResearchDirection, bool) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}

	out := make([]domain.ResearchDirection, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}

		direction, ok1 := nonEmptyString(entry, "direction")
		rationale, ok2 := nonEmptyString(entry, "rationale")
		gap, ok3 := nonEmptyString(entry, "gap_addressed")
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}

		out = append(out, domain.ResearchDirection{
			Direction:    direction,
			Rationale:    rationale,
			GapAddressed: gap,
		})
	}
	return out, true
}

func nonEmptyString(entry map[string]any, key string) (string, bool) {
	s, ok := entry[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
