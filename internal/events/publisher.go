// Package events publishes service events to Kafka.
//
// Publication is best effort: a failed write is logged and counted but never
// reported to the request that triggered it. Completion events are written
// in the background so a slow broker does not delay the response.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/observability"
)

const (
	// DefaultServiceName is the source stamped on every event.
	DefaultServiceName = "research-ideas-service"

	// DefaultWriteTimeout bounds a single publish.
	DefaultWriteTimeout = 5 * time.Second
)

// Writer is the subset of *kafka.Writer used by the Publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Recorder receives publish telemetry.
// *observability.Metrics satisfies this interface.
type Recorder interface {
	RecordEventPublished(eventType string)
	RecordEventFailed(eventType string)
}

// Config holds configuration for the Kafka publisher.
type Config struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string
	// Topic is the Kafka topic events are written to.
	Topic string
	// BatchSize is the writer batch size.
	BatchSize int
	// BatchTimeout is the maximum time a partial batch is held.
	BatchTimeout time.Duration
	// WriteTimeout bounds a single publish. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration
	// ServiceName is stamped as the event source.
	ServiceName string
}

// NewKafkaWriter creates a synchronous writer for cfg.
func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// Publisher writes event envelopes to Kafka.
type Publisher struct {
	writer   Writer
	source   string
	timeout  time.Duration
	recorder Recorder
	logger   zerolog.Logger
	inflight sync.WaitGroup
}

// NewPublisher creates a Publisher. recorder may be nil.
func NewPublisher(writer Writer, cfg Config, recorder Recorder, logger zerolog.Logger) *Publisher {
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return &Publisher{
		writer:   writer,
		source:   cfg.ServiceName,
		timeout:  cfg.WriteTimeout,
		recorder: recorder,
		logger:   logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Publish writes one event. The message key is the event ID; event type and
// correlation ID are copied into headers.
func (p *Publisher) Publish(ctx context.Context, event *domain.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte(event.EventType)}}
	if event.CorrelationID != "" {
		headers = append(headers, kafka.Header{Key: "correlation_id", Value: []byte(event.CorrelationID)})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.EventID),
		Value:   value,
		Headers: headers,
		Time:    event.OccurredAt,
	}); err != nil {
		return fmt.Errorf("write %s: %w", event.EventType, err)
	}
	return nil
}

// IdeasGenerated publishes an ideas.generated event for result in the
// background and returns at once. The write is detached from the request
// context so that a client disconnect does not drop the event. Errors are
// logged, never returned.
func (p *Publisher) IdeasGenerated(ctx context.Context, result *domain.PipelineResult) {
	logger := observability.FromContext(ctx, p.logger)

	event, err := domain.NewEvent(domain.EventTypeIdeasGenerated, p.source, domain.NewIdeasGeneratedPayload(result))
	if err != nil {
		p.failed(logger, domain.EventTypeIdeasGenerated, err)
		return
	}

	rc := observability.RequestContextFromContext(ctx)
	correlationID := rc.CorrelationID
	if correlationID == "" {
		correlationID = rc.RequestID
	}
	event.WithCorrelationID(correlationID)

	writeCtx := context.WithoutCancel(ctx)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()

		if err := p.Publish(writeCtx, event); err != nil {
			p.failed(logger, event.EventType, err)
			return
		}

		if p.recorder != nil {
			p.recorder.RecordEventPublished(event.EventType)
		}
		logger.Debug().
			Str("event_id", event.EventID).
			Str("event_type", event.EventType).
			Msg("event published")
	}()
}

// Wait blocks until every background publish has finished.
func (p *Publisher) Wait() {
	p.inflight.Wait()
}

func (p *Publisher) failed(logger zerolog.Logger, eventType string, err error) {
	if p.recorder != nil {
		p.recorder.RecordEventFailed(eventType)
	}
	logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
}

// Close waits for background publishes, then flushes and closes the
// underlying writer.
func (p *Publisher) Close() error {
	p.Wait()
	return p.writer.Close()
}
