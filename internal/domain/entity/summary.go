// Package entity defines the domain objects persisted by the service.
package entity

import "time"

// AnonymousUser is recorded when a summary is produced without an identity.
const AnonymousUser = "anonymous"

// Summary is one produced summary as stored for a user's history.
type Summary struct {
	ID           int64
	UserEmail    string
	Title        string
	URL          string
	OriginalText string
	SummaryText  string
	// Method is the algorithm that produced SummaryText; empty for summaries
	// saved by clients.
	Method    string
	CreatedAt time.Time
}

// Validate checks the fields required before persisting.
func (s *Summary) Validate() error {
	if err := ValidateEmail(s.UserEmail); err != nil {
		return err
	}
	if s.SummaryText == "" {
		return &ValidationError{Field: "summary", Message: "summary is required"}
	}
	if len(s.Title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if s.URL != "" {
		if err := ValidateURL(s.URL); err != nil {
			return err
		}
	}
	return nil
}

// UserMetrics aggregates a user's summary history.
type UserMetrics struct {
	TotalSummaries int64
	// AverageLength is the mean summary length in characters.
	AverageLength float64
	// LastSummary is the text of the most recent summary, empty if none.
	LastSummary string
}

// ActivityDay is the number of summaries a user produced on one UTC day.
type ActivityDay struct {
	Date  string // YYYY-MM-DD
	Count int64
}
