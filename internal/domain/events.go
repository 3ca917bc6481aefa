package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event type constants for published events.
const (
	EventTypeIdeasGenerated = "ideas.generated"
)

// Event is the envelope written to the event stream.
type Event struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Source        string          `json:"source"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEvent creates a new event with the given parameters.
// The payload is JSON-serialized automatically.
func NewEvent(eventType, source string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		EventID:      uuid.New().String(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Source:       source,
		Payload:      payloadBytes,
	}, nil
}

// WithCorrelationID sets the correlation ID on the event.
func (e *Event) WithCorrelationID(correlationID string) *Event {
	e.CorrelationID = correlationID
	return e
}

// IdeasGeneratedPayload is the payload for ideas.generated events.
type IdeasGeneratedPayload struct {
	Topic          string              `json:"topic"`
	FocusArea      string              `json:"focus_area"`
	PapersAnalyzed int                 `json:"papers_analyzed"`
	Directions     []ResearchDirection `json:"directions"`
	Degraded       bool                `json:"degraded"`
	GeneratedAt    string              `json:"generated_at"`
}

// NewIdeasGeneratedPayload summarizes a pipeline result for the event stream.
func NewIdeasGeneratedPayload(r *PipelineResult) IdeasGeneratedPayload {
	return IdeasGeneratedPayload{
		Topic:          r.Topic,
		FocusArea:      r.FocusArea,
		PapersAnalyzed: r.PapersAnalyzed,
		Directions:     r.Directions[:],
		Degraded:       r.Degraded(),
		GeneratedAt:    r.GeneratedAtString(),
	}
}
