// Package worklog holds time entries logged against Jira issues.
package worklog

import (
	"strings"
	"time"

	"worklog/internal/domain"
	"worklog/internal/domain/jira"
	"worklog/internal/resource"
)

// TimeEntry is one Tempo worklog against a Jira issue.
type TimeEntry struct {
	ID               int64
	TenantID         int64
	TempoWorklogID   *int64
	IssueID          int64
	AuthorID         int64
	Description      string
	StartedAt        time.Time
	TimeSpentSeconds int
	BillableSeconds  int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Issue  *jira.Issue
	Author *jira.User
}

// NewTimeEntry creates a time entry with validation. Billable time defaults
// to the time spent.
func NewTimeEntry(tenantID, issueID, authorID int64, startedAt time.Time, spentSeconds int, description string) (*TimeEntry, error) {
	now := time.Now().UTC()
	e := &TimeEntry{
		TenantID:         tenantID,
		IssueID:          issueID,
		AuthorID:         authorID,
		Description:      strings.TrimSpace(description),
		StartedAt:        startedAt.UTC(),
		TimeSpentSeconds: spentSeconds,
		BillableSeconds:  spentSeconds,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return e, e.Validate()
}

// Validate checks the time entry invariants.
func (e *TimeEntry) Validate() error {
	if e.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", e.TenantID)
	}
	if e.IssueID <= 0 {
		return domain.Invalid("issue_id", "issue is required")
	}
	if e.AuthorID <= 0 {
		return domain.Invalid("author_id", "author is required")
	}
	if e.StartedAt.IsZero() {
		return domain.Invalid("started_at", "start time is required")
	}
	if e.TimeSpentSeconds <= 0 {
		return domain.Invalid("time_spent_seconds", "must be positive")
	}
	if e.BillableSeconds < 0 || e.BillableSeconds > e.TimeSpentSeconds {
		return domain.Invalid("billable_seconds", "must be between 0 and time_spent_seconds")
	}
	return nil
}

// Hours returns the time spent in hours.
func (e *TimeEntry) Hours() float64 {
	return float64(e.TimeSpentSeconds) / 3600
}

func (e *TimeEntry) Attributes() map[string]any {
	return map[string]any{
		"id":                 e.ID,
		"tempo_worklog_id":   e.TempoWorklogID,
		"issue_id":           e.IssueID,
		"author_id":          e.AuthorID,
		"description":        e.Description,
		"started_at":         e.StartedAt,
		"time_spent_seconds": e.TimeSpentSeconds,
		"billable_seconds":   e.BillableSeconds,
		"hours":              e.Hours(),
		"created_at":         e.CreatedAt,
		"updated_at":         e.UpdatedAt,
	}
}

func (e *TimeEntry) Related() map[string]resource.Model {
	out := map[string]resource.Model{}
	if e.Issue != nil {
		out["issue"] = e.Issue
	}
	if e.Author != nil {
		out["user"] = e.Author
	}
	return out
}
