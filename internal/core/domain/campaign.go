package domain

import "time"

// Campaign statuses. A campaign starts in draft and moves between the
// remaining states through the status endpoint.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Statuses lists every valid campaign status.
var Statuses = []string{StatusDraft, StatusActive, StatusPaused, StatusCompleted}

// ValidStatus reports whether s is one of the enumerated campaign statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Campaign represents a marketing campaign as served by the API. The id is
// server-assigned and immutable. Spent and Clicks are server-computed and
// never sent by the client. Dates travel as ISO date strings (YYYY-MM-DD).
type Campaign struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	Budget         float64   `json:"budget"`
	Spent          float64   `json:"spent"`
	Clicks         int64     `json:"clicks"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Description    string    `json:"description,omitempty"`
	TargetAudience string    `json:"targetAudience,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

// Pagination is the server-reported paging block of a list envelope.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
