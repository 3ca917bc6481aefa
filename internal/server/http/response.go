package httpserver

import (
	"github.com/helixir/research-ideas-service/internal/domain"
)

// Response types for JSON serialization.

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type generateIdeasResponse struct {
	Success     bool                  `json:"success"`
	Ideas       []domain.ResearchIdea `json:"ideas"`
	Topic       string                `json:"topic"`
	FocusArea   string                `json:"focus_area"`
	Analysis    analysisResponse      `json:"analysis"`
	GeneratedAt string                `json:"generated_at"`
}

type analysisResponse struct {
	PapersAnalyzed     int                        `json:"papers_analyzed"`
	ResearchDirections []domain.ResearchDirection `json:"research_directions"`
	Degraded           degradedResponse           `json:"degraded"`
}

type degradedResponse struct {
	Literature bool `json:"literature"`
	Directions bool `json:"directions"`
}

type searchPapersResponse struct {
	Success bool            `json:"success"`
	Papers  []paperResponse `json:"papers"`
}

type paperResponse struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Published       string   `json:"published"`
	Abstract        string   `json:"abstract"`
	URL             string   `json:"url"`
	Categories      []string `json:"categories"`
	PrimaryCategory string   `json:"primary_category,omitempty"`
}

type trendsResponse struct {
	Success  bool                 `json:"success"`
	Topic    string               `json:"topic"`
	Analysis domain.TrendAnalysis `json:"analysis"`
}

// Conversion helpers.

func pipelineResultToResponse(r *domain.PipelineResult) generateIdeasResponse {
	return generateIdeasResponse{
		Success:   true,
		Ideas:     r.Ideas[:],
		Topic:     r.Topic,
		FocusArea: r.FocusArea,
		Analysis: analysisResponse{
			PapersAnalyzed:     r.PapersAnalyzed,
			ResearchDirections: r.Directions[:],
			Degraded: degradedResponse{
				Literature: r.LiteratureFallback,
				Directions: r.DirectionsFallback,
			},
		},
		GeneratedAt: r.GeneratedAtString(),
	}
}

func papersToResponse(papers []domain.Paper) []paperResponse {
	out := make([]paperResponse, 0, len(papers))
	for _, p := range papers {
		authors := p.Authors
		if authors == nil {
			authors = []string{}
		}
		categories := p.Categories
		if categories == nil {
			categories = []string{}
		}
		out = append(out, paperResponse{
			Title:           p.Title,
			Authors:         authors,
			Published:       p.PublishedDate(),
			Abstract:        p.Abstract,
			URL:             p.URL,
			Categories:      categories,
			PrimaryCategory: p.PrimaryCategory,
		})
	}
	return out
}

func trendAnalysisToResponse(topic string, a domain.TrendAnalysis) trendsResponse {
	if a.YearDistribution == nil {
		a.YearDistribution = map[int]int{}
	}
	if a.TopAuthors == nil {
		a.TopAuthors = []domain.Count{}
	}
	if a.TopKeywords == nil {
		a.TopKeywords = []domain.Count{}
	}
	return trendsResponse{Success: true, Topic: topic, Analysis: a}
}
