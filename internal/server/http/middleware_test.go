package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/research-ideas-service/internal/observability"
)

func TestCorrelationIDMiddleware_UsesHeader(t *testing.T) {
	var captured observability.RequestContext

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(correlationIDMiddleware)
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		captured = observability.RequestContextFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "corr-123", rr.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "corr-123", captured.CorrelationID)
	assert.NotEmpty(t, captured.RequestID)
}

func TestCorrelationIDMiddleware_FallsBackToRequestID(t *testing.T) {
	var captured observability.RequestContext

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(correlationIDMiddleware)
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		captured = observability.RequestContextFromContext(r.Context())
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotEmpty(t, captured.RequestID)
	assert.Equal(t, captured.RequestID, captured.CorrelationID)
	assert.Equal(t, captured.RequestID, rr.Header().Get("X-Correlation-ID"))
}

func TestCorrelationIDMiddleware_GeneratesUUID(t *testing.T) {
	rr := httptest.NewRecorder()
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	_, err := uuid.Parse(rr.Header().Get("X-Correlation-ID"))
	assert.NoError(t, err)
}

func TestJSONContentTypeMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	handler := jsonContentTypeMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRequestLogger_RecordsRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	var buf bytes.Buffer
	srv := NewServer(Config{}, Dependencies{
		Generator: &fakeGenerator{},
		Source:    &fakeSource{},
		Trends:    &fakeTrends{},
		Recorder:  rec,
	}, zerolog.New(&buf))

	postJSON(srv, "/api/search-papers", `{}`)
	serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.requests, 2)
	assert.Equal(t, recordedRequest{"/api/search-papers", http.MethodPost, "400"}, rec.requests[0])
	assert.Equal(t, "404", rec.requests[1].status)

	assert.Contains(t, buf.String(), `"message":"request completed"`)
	assert.Contains(t, buf.String(), `"route":"/api/search-papers"`)
	assert.Contains(t, buf.String(), `"request_id"`)
}

func TestRecoverer_PanicBecomesJSON500(t *testing.T) {
	var buf bytes.Buffer
	srv := NewServer(Config{}, Dependencies{Generator: &fakeGenerator{panicMsg: "kaboom"}}, zerolog.New(&buf))

	rr := postJSON(srv, "/api/v1/ideas", `{"topic":"x"}`)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"An error occurred: internal server error"}`, rr.Body.String())
	assert.Contains(t, buf.String(), "handler panicked")
	assert.Contains(t, buf.String(), "kaboom")
}
