// Package summary provides the HTTP handlers for summarizing documents and
// for browsing a user's stored summaries.
package summary

import (
	"time"

	"summary-service/internal/domain/entity"
)

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Content   string `json:"content" example:"Full article text or https://example.com/post"`
	UserEmail string `json:"user_email,omitempty" example:"ada@example.com"`
	Title     string `json:"title,omitempty" example:"Solar market update"`
	URL       string `json:"url,omitempty" example:"https://example.com/post"`
}

// SummarizeResponse is the produced summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
	Method  string `json:"method" example:"centrality"`
	// Sentences is the target sentence count chosen from the document length.
	Sentences int    `json:"sentences" example:"3"`
	Title     string `json:"title" example:"Summarized Article"`
	URL       string `json:"url,omitempty"`
}

// SaveRequest is the body of POST /api/save-summary.
type SaveRequest struct {
	Email   string `json:"email" example:"ada@example.com"`
	Title   string `json:"title" example:"Solar market update"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// SaveResponse acknowledges a stored summary.
type SaveResponse struct {
	Message string `json:"message" example:"Summary saved successfully"`
	ID      int64  `json:"id" example:"42"`
}

// DTO is one stored summary.
type DTO struct {
	ID        int64     `json:"id" example:"42"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Summary   string    `json:"summary"`
	Method    string    `json:"method,omitempty"`
	CreatedAt time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
}

// MetricsDTO aggregates a user's history for the dashboard.
type MetricsDTO struct {
	TotalSummaries int64   `json:"total_summaries" example:"12"`
	AverageLength  float64 `json:"average_length" example:"412.5"`
	LastSummary    string  `json:"last_summary"`
}

// ActivityDTO is one heatmap cell.
type ActivityDTO struct {
	Date  string `json:"date" example:"2025-10-26"`
	Count int64  `json:"count" example:"3"`
}

func toDTO(s *entity.Summary) DTO {
	return DTO{
		ID:        s.ID,
		Title:     s.Title,
		URL:       s.URL,
		Summary:   s.SummaryText,
		Method:    s.Method,
		CreatedAt: s.CreatedAt,
	}
}

func toDTOs(list []*entity.Summary) []DTO {
	out := make([]DTO, 0, len(list))
	for _, s := range list {
		out = append(out, toDTO(s))
	}
	return out
}
