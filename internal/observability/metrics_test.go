package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return NewMetricsWith(prometheus.NewRegistry(), "test_ideas")
}

func TestNewMetrics(t *testing.T) {
	m := newTestMetrics(t)

	assert.NotNil(t, m.PipelineRuns)
	assert.NotNil(t, m.PipelineDuration)
	assert.NotNil(t, m.PipelineFallbacks)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.SourceRequestsTotal)
	assert.NotNil(t, m.LLMRequestsTotal)
	assert.NotNil(t, m.EventsPublished)
}

func TestNewMetricsWith_IsolatedRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsWith(prometheus.NewRegistry(), "same")
		NewMetricsWith(prometheus.NewRegistry(), "same")
	})
}

func TestRecordPipelineRun(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordPipelineRun(true, 3, 1.5)
	m.RecordPipelineRun(false, 10, 0.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PipelineRuns.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PipelineRuns.WithLabelValues("false")))

	count, err := getHistogramSampleCount(m.PipelineDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestRecordFallback(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordFallback(StageLiterature)
	m.RecordFallback(StageDirections)
	m.RecordFallback(StageDirections)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PipelineFallbacks.WithLabelValues(StageLiterature)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.PipelineFallbacks.WithLabelValues(StageDirections)))
}

func TestRecordSourceMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordSourceRequest("arxiv", 0.2)
	m.RecordSourceRequestFailed("arxiv", "http_503")
	m.RecordSourceRateLimited("arxiv")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SourceRequestsTotal.WithLabelValues("arxiv")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SourceRequestsFailed.WithLabelValues("arxiv", "http_503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SourceRateLimited.WithLabelValues("arxiv")))
}

func TestRecordLLMMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordLLMRequest("gemini", "gemini-2.5-flash", 2.5)
	m.RecordLLMFailure("gemini", "timeout")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("gemini", "gemini-2.5-flash")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LLMRequestsFailed.WithLabelValues("gemini", "timeout")))
}

func TestRecordHTTPAndEventMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordHTTPRequest("/api/generate-ideas-enhanced", "POST", "200", 0.3)
	m.RecordEventPublished("ideas.generated")
	m.RecordEventFailed("ideas.generated")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/generate-ideas-enhanced", "POST", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsPublished.WithLabelValues("ideas.generated")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsFailed.WithLabelValues("ideas.generated")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordPipelineRun(false, 1, 1)
		m.RecordFallback(StageLiterature)
		m.RecordHTTPRequest("/", "GET", "200", 0)
		m.RecordSourceRequest("arxiv", 0)
		m.RecordSourceRequestFailed("arxiv", "x")
		m.RecordSourceRateLimited("arxiv")
		m.RecordLLMRequest("gemini", "m", 0)
		m.RecordLLMFailure("gemini", "timeout")
		m.RecordEventPublished("e")
		m.RecordEventFailed("e")
	})
}

// Helper to get histogram sample count
func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	ch := make(chan prometheus.Metric, 1)
	h.Collect(ch)
	close(ch)

	var m prometheus.Metric
	for m = range ch {
		break
	}

	var dto = &dto.Metric{}
	if err := m.Write(dto); err != nil {
		return 0, err
	}

	return dto.Histogram.GetSampleCount(), nil
}
