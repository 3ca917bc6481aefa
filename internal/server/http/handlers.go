package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/helixir/research-ideas-service/internal/domain"
	"github.com/helixir/research-ideas-service/internal/ideas"
	"github.com/helixir/research-ideas-service/internal/observability"
	"github.com/helixir/research-ideas-service/internal/papersources"
)

// Request and validation constants.
const (
	defaultMaxBodyBytes = 1 << 20 // 1 MB limit for request bodies
	defaultSearchLimit  = 10
	emptyTopicMessage   = "Research topic is empty."
	emptySearchMessage  = "Please provide a search query or author."
	sourceDisabledError = "literature source is disabled"
)

// generateIdeasRequest is the JSON request body for idea generation.
// Categories are accepted for compatibility and not used.
type generateIdeasRequest struct {
	Topic      string   `json:"topic" validate:"max=1000"`
	FocusArea  string   `json:"focus_area" validate:"max=1000"`
	NumPapers  *int     `json:"num_papers,omitempty"`
	Categories []string `json:"categories,omitempty" validate:"max=50"`
}

// searchPapersRequest is the JSON request body for a literature search.
type searchPapersRequest struct {
	Query      string `json:"query" validate:"max=500"`
	Author     string `json:"author" validate:"max=200"`
	MaxResults *int   `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
}

// analyzeTrendsRequest is the JSON request body for a trend analysis.
type analyzeTrendsRequest struct {
	Topic string `json:"topic" validate:"max=500"`
}

// generateIdeas handles POST /api/generate-ideas-enhanced.
func (s *Server) generateIdeas(w http.ResponseWriter, r *http.Request) {
	var req generateIdeasRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Topic) == "" {
		writeMessage(w, http.StatusBadRequest, emptyTopicMessage)
		return
	}

	numPapers := s.cfg.DefaultPapers
	if req.NumPapers != nil {
		numPapers = min(*req.NumPapers, s.cfg.MaxPapers)
	}

	result, err := s.generator.Generate(r.Context(), ideas.Request{
		Topic:     req.Topic,
		FocusArea: req.FocusArea,
		NumPapers: numPapers,
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeMessage(w, http.StatusBadRequest, ve.Message)
			return
		}
		s.internalError(w, r, "idea generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, pipelineResultToResponse(&result))
}

// searchPapers handles POST /api/search-papers. Source failures are
// reported to the caller; there is no fallback here.
func (s *Server) searchPapers(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, sourceDisabledError)
		return
	}

	var req searchPapersRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	params := papersources.SearchParams{
		Query:      strings.TrimSpace(req.Query),
		Author:     strings.TrimSpace(req.Author),
		SortBy:     papersources.SortByRelevance,
		MaxResults: defaultSearchLimit,
	}
	if req.MaxResults != nil {
		params.MaxResults = *req.MaxResults
	}
	if params.IsEmpty() {
		writeMessage(w, http.StatusBadRequest, emptySearchMessage)
		return
	}

	result, err := s.source.Search(r.Context(), params)
	if err != nil {
		s.internalError(w, r, "paper search failed", err)
		return
	}

	var papers []domain.Paper
	if result != nil {
		papers = result.Papers
	}
	writeJSON(w, http.StatusOK, searchPapersResponse{
		Success: true,
		Papers:  papersToResponse(papers),
	})
}

// analyzeTrends handles POST /analyze-trends. An empty body analyzes the
// default topic.
func (s *Server) analyzeTrends(w http.ResponseWriter, r *http.Request) {
	if s.trends == nil {
		writeError(w, http.StatusServiceUnavailable, sourceDisabledError)
		return
	}

	var req analyzeTrendsRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	topic, analysis, err := s.trends.Analyze(r.Context(), req.Topic)
	if err != nil {
		s.internalError(w, r, "trend analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, trendAnalysisToResponse(topic, analysis))
}

// decodeRequest reads a bounded JSON body into dst and validates it. An
// empty body leaves dst at its zero value. It writes the 400 response and
// returns false when the body is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid JSON request body")
			return false
		}
	}

	if err := s.validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// internalError logs err and writes the 500 {success:false, error} shape.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := observability.FromContext(r.Context(), s.logger)
	logger.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
}

// validationMessage renders the first field error using JSON field names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must be at most %s long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// jsonFieldName makes validator report fields by their JSON names.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
