// Package observability holds the service's zerolog setup, its Prometheus
// collectors and the helpers that carry request identifiers through a
// context.
//
// A typical request handler derives its logger from the context so that the
// request and correlation IDs set by the HTTP middleware appear on every line:
//
//	logger := observability.FromContext(ctx, base)
//	logger = observability.WithPipelineContext(logger, topic, focusArea)
//
// Metrics are registered once per process:
//
//	m := observability.NewMetrics("research_ideas")
//	m.RecordFallback(observability.StageDirections)
//
// All Record methods accept a nil *Metrics, so components can be built
// without metrics in tests and in the CLI.
//
// Log fields shared across packages: request_id, correlation_id, topic,
// focus_area, source, provider, model, component.
package observability
