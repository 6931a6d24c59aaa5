package worklog

import (
	"testing"
	"time"

	"worklog/internal/domain"
	"worklog/internal/domain/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeEntry(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	e, err := NewTimeEntry(1, 2, 3, start, 5400, " standup ")
	require.NoError(t, err)
	assert.Equal(t, "standup", e.Description)
	assert.Equal(t, 5400, e.BillableSeconds)
	assert.InDelta(t, 1.5, e.Hours(), 0.0001)
}

func TestTimeEntryValidate(t *testing.T) {
	start := time.Now()
	tests := []struct {
		name  string
		mut   func(e *TimeEntry)
		field string
	}{
		{"no issue", func(e *TimeEntry) { e.IssueID = 0 }, "issue_id"},
		{"no author", func(e *TimeEntry) { e.AuthorID = 0 }, "author_id"},
		{"zero start", func(e *TimeEntry) { e.StartedAt = time.Time{} }, "started_at"},
		{"no time spent", func(e *TimeEntry) { e.TimeSpentSeconds = 0 }, "time_spent_seconds"},
		{"billable over spent", func(e *TimeEntry) { e.BillableSeconds = 7200 }, "billable_seconds"},
		{"negative billable", func(e *TimeEntry) { e.BillableSeconds = -1 }, "billable_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &TimeEntry{TenantID: 1, IssueID: 2, AuthorID: 3, StartedAt: start, TimeSpentSeconds: 3600, BillableSeconds: 3600}
			tt.mut(e)
			var ve *domain.ValidationError
			require.ErrorAs(t, e.Validate(), &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestTimeEntryRelated(t *testing.T) {
	e := &TimeEntry{Issue: &jira.Issue{ID: 1}, Author: &jira.User{ID: 2}}
	rel := e.Related()
	assert.Len(t, rel, 2)
	assert.Contains(t, rel, "issue")
	assert.Contains(t, rel, "user")
}
