package postgres

import (
	"context"
	"time"

	"worklog/internal/domain/worklog"
	"worklog/internal/store/repositories"
)

// timeEntryRepository implements TimeEntryRepository
type timeEntryRepository struct {
	table[*worklog.TimeEntry]
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db DBTX) repositories.TimeEntryRepository {
	return &timeEntryRepository{table[*worklog.TimeEntry]{db: db, sc: timeEntrySchema}}
}

// Save saves a time entry (insert or update). Entries carrying a Tempo
// worklog ID upsert on it.
func (r *timeEntryRepository) Save(ctx context.Context, e *worklog.TimeEntry) error {
	if e.ID == 0 {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *timeEntryRepository) insert(ctx context.Context, e *worklog.TimeEntry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO time_entries (tenant_id, tempo_worklog_id, issue_id, author_id, description, started_at,
		                          time_spent_seconds, billable_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id, tempo_worklog_id) DO UPDATE SET
		    issue_id = EXCLUDED.issue_id,
		    author_id = EXCLUDED.author_id,
		    description = EXCLUDED.description,
		    started_at = EXCLUDED.started_at,
		    time_spent_seconds = EXCLUDED.time_spent_seconds,
		    billable_seconds = EXCLUDED.billable_seconds,
		    updated_at = now()
		RETURNING id, created_at, updated_at`,
		e.TenantID, e.TempoWorklogID, e.IssueID, e.AuthorID, e.Description, e.StartedAt,
		e.TimeSpentSeconds, e.BillableSeconds, e.CreatedAt, e.UpdatedAt).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}

func (r *timeEntryRepository) update(ctx context.Context, e *worklog.TimeEntry) error {
	e.UpdatedAt = time.Now().UTC()
	return execOne(ctx, r.db, `
		UPDATE time_entries
		SET tempo_worklog_id = $1, issue_id = $2, author_id = $3, description = $4, started_at = $5,
		    time_spent_seconds = $6, billable_seconds = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`,
		e.TempoWorklogID, e.IssueID, e.AuthorID, e.Description, e.StartedAt,
		e.TimeSpentSeconds, e.BillableSeconds, e.UpdatedAt, e.ID, e.TenantID)
}
