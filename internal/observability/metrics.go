package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stages that can degrade to a deterministic fallback.
const (
	StageLiterature = "literature"
	StageDirections = "directions"
)

// Metrics contains all Prometheus metrics for the research ideas service.
// Metrics are organized by subsystem: pipeline, HTTP, sources, LLM and events.
// All counters and histograms are registered via promauto.
//
// Record methods are safe to call on a nil *Metrics.
type Metrics struct {
	// PipelineRuns counts completed pipeline runs, labeled by degraded ("true"/"false").
	PipelineRuns *prometheus.CounterVec

	// PipelineDuration observes end-to-end pipeline duration in seconds.
	PipelineDuration prometheus.Histogram

	// PipelineFallbacks counts fallbacks taken, labeled by stage.
	PipelineFallbacks *prometheus.CounterVec

	// PapersPerRun observes the number of papers used as context per run.
	PapersPerRun prometheus.Histogram

	// HTTPRequestsTotal counts HTTP requests, labeled by route, method and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request duration in seconds, labeled by route.
	HTTPRequestDuration *prometheus.HistogramVec

	// SourceRequestsTotal counts HTTP requests to literature sources, labeled by source.
	SourceRequestsTotal *prometheus.CounterVec

	// SourceRequestsFailed counts failed source requests, labeled by source and error type.
	SourceRequestsFailed *prometheus.CounterVec

	// SourceRequestDuration observes source request duration in seconds.
	SourceRequestDuration *prometheus.HistogramVec

	// SourceRateLimited counts rate-limited responses from sources, labeled by source.
	SourceRateLimited *prometheus.CounterVec

	// LLMRequestsTotal counts model invocations, labeled by provider and model.
	LLMRequestsTotal *prometheus.CounterVec

	// LLMRequestsFailed counts failed model invocations, labeled by provider and failure kind.
	LLMRequestsFailed *prometheus.CounterVec

	// LLMRequestDuration observes model invocation duration in seconds, labeled by provider.
	LLMRequestDuration *prometheus.HistogramVec

	// EventsPublished counts events written to the event stream, labeled by event type.
	EventsPublished *prometheus.CounterVec

	// EventsFailed counts events that could not be published, labeled by event type.
	EventsFailed *prometheus.CounterVec
}

// NewMetrics creates metrics registered with the default Prometheus registry.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates metrics registered with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		PipelineRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of idea generation pipeline runs",
		}, []string{"degraded"}),
		PipelineDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of idea generation pipeline runs",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}),
		PipelineFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Total number of deterministic fallbacks by pipeline stage",
		}, []string{"stage"}),
		PapersPerRun: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "papers_per_run",
			Help:      "Number of papers used as literature context per run",
			Buckets:   []float64{1, 2, 3, 5, 7, 10},
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		SourceRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total number of literature source API requests",
		}, []string{"source"}),
		SourceRequestsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_failed_total",
			Help:      "Total number of failed literature source API requests",
		}, []string{"source", "error_type"}),
		SourceRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "Duration of literature source API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		SourceRateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rate_limited_total",
			Help:      "Total number of rate-limited literature source responses",
		}, []string{"source"}),

		LLMRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of model invocations",
		}, []string{"provider", "model"}),
		LLMRequestsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_failed_total",
			Help:      "Total number of failed model invocations",
		}, []string{"provider", "kind"}),
		LLMRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of model invocations",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 40, 60},
		}, []string{"provider"}),

		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events published",
		}, []string{"event_type"}),
		EventsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of events that failed to publish",
		}, []string{"event_type"}),
	}
}

// RecordPipelineRun records a finished pipeline run.
func (m *Metrics) RecordPipelineRun(degraded bool, papers int, durationSeconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if degraded {
		label = "true"
	}
	m.PipelineRuns.WithLabelValues(label).Inc()
	m.PipelineDuration.Observe(durationSeconds)
	m.PapersPerRun.Observe(float64(papers))
}

// RecordFallback records that stage degraded to its fallback.
func (m *Metrics) RecordFallback(stage string) {
	if m == nil {
		return
	}
	m.PipelineFallbacks.WithLabelValues(stage).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(route, method, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordSourceRequest records a request to a literature source API.
func (m *Metrics) RecordSourceRequest(source string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.SourceRequestsTotal.WithLabelValues(source).Inc()
	m.SourceRequestDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordSourceRequestFailed records a failed literature source request.
func (m *Metrics) RecordSourceRequestFailed(source, errorType string) {
	if m == nil {
		return
	}
	m.SourceRequestsFailed.WithLabelValues(source, errorType).Inc()
}

// RecordSourceRateLimited records a rate-limited literature source response.
func (m *Metrics) RecordSourceRateLimited(source string) {
	if m == nil {
		return
	}
	m.SourceRateLimited.WithLabelValues(source).Inc()
}

// RecordLLMRequest records a model invocation.
func (m *Metrics) RecordLLMRequest(provider, model string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, model).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordLLMFailure records a failed model invocation by failure kind.
func (m *Metrics) RecordLLMFailure(provider, kind string) {
	if m == nil {
		return
	}
	m.LLMRequestsFailed.WithLabelValues(provider, kind).Inc()
}

// RecordEventPublished records a published event.
func (m *Metrics) RecordEventPublished(eventType string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventFailed records an event that could not be published.
func (m *Metrics) RecordEventFailed(eventType string) {
	if m == nil {
		return
	}
	m.EventsFailed.WithLabelValues(eventType).Inc()
}
