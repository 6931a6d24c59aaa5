package postgres

import (
	"context"
	"time"

	"worklog/internal/domain/jira"
	"worklog/internal/store/repositories"
)

// Jira rows are keyed by their external ID per tenant, so inserts upsert and
// a repeated sync of the same Jira object updates the existing row.

type jiraUserRepository struct {
	table[*jira.User]
}

// NewJiraUserRepository creates a new Jira user repository
func NewJiraUserRepository(db DBTX) repositories.JiraUserRepository {
	return &jiraUserRepository{table[*jira.User]{db: db, sc: jiraUserSchema}}
}

func (r *jiraUserRepository) Save(ctx context.Context, u *jira.User) error {
	if u.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO jira_users (tenant_id, account_id, display_name, email, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (tenant_id, account_id) DO UPDATE SET
			    display_name = EXCLUDED.display_name,
			    email = COALESCE(NULLIF(EXCLUDED.email, ''), jira_users.email),
			    active = EXCLUDED.active,
			    updated_at = now()
			RETURNING id, email, created_at, updated_at`,
			u.TenantID, u.AccountID, u.DisplayName, u.Email, u.Active, u.CreatedAt, u.UpdatedAt).
			Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
		return mapError(err)
	}
	u.UpdatedAt = time.Now().UTC()
	return execOne(ctx, r.db, `
		UPDATE jira_users
		SET account_id = $1, display_name = $2, email = $3, active = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`,
		u.AccountID, u.DisplayName, u.Email, u.Active, u.UpdatedAt, u.ID, u.TenantID)
}

type jiraProjectRepository struct {
	table[*jira.Project]
}

// NewJiraProjectRepository creates a new Jira project repository
func NewJiraProjectRepository(db DBTX) repositories.JiraProjectRepository {
	return &jiraProjectRepository{table[*jira.Project]{db: db, sc: jiraProjectSchema}}
}

func (r *jiraProjectRepository) Save(ctx context.Context, p *jira.Project) error {
	if p.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO jira_projects (tenant_id, jira_id, key, name, lead_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (tenant_id, jira_id) DO UPDATE SET
			    key = EXCLUDED.key,
			    name = EXCLUDED.name,
			    lead_id = COALESCE(EXCLUDED.lead_id, jira_projects.lead_id),
			    updated_at = now()
			RETURNING id, lead_id, created_at, updated_at`,
			p.TenantID, p.JiraID, p.Key, p.Name, p.LeadID, p.CreatedAt, p.UpdatedAt).
			Scan(&p.ID, &p.LeadID, &p.CreatedAt, &p.UpdatedAt)
		return mapError(err)
	}
	p.UpdatedAt = time.Now().UTC()
	return execOne(ctx, r.db, `
		UPDATE jira_projects
		SET jira_id = $1, key = $2, name = $3, lead_id = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`,
		p.JiraID, p.Key, p.Name, p.LeadID, p.UpdatedAt, p.ID, p.TenantID)
}

type jiraTeamRepository struct {
	table[*jira.Team]
}

// NewJiraTeamRepository creates a new Tempo team repository
func NewJiraTeamRepository(db DBTX) repositories.JiraTeamRepository {
	return &jiraTeamRepository{table[*jira.Team]{db: db, sc: jiraTeamSchema}}
}

func (r *jiraTeamRepository) Save(ctx context.Context, t *jira.Team) error {
	if t.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO jira_teams (tenant_id, tempo_id, name, lead_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (tenant_id, tempo_id) DO UPDATE SET
			    name = EXCLUDED.name,
			    lead_id = COALESCE(EXCLUDED.lead_id, jira_teams.lead_id),
			    updated_at = now()
			RETURNING id, lead_id, created_at, updated_at`,
			t.TenantID, t.TempoID, t.Name, t.LeadID, t.CreatedAt, t.UpdatedAt).
			Scan(&t.ID, &t.LeadID, &t.CreatedAt, &t.UpdatedAt)
		return mapError(err)
	}
	t.UpdatedAt = time.Now().UTC()
	return execOne(ctx, r.db, `
		UPDATE jira_teams
		SET tempo_id = $1, name = $2, lead_id = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		t.TempoID, t.Name, t.LeadID, t.UpdatedAt, t.ID, t.TenantID)
}

type jiraIssueRepository struct {
	table[*jira.Issue]
}

// NewJiraIssueRepository creates a new Jira issue repository
func NewJiraIssueRepository(db DBTX) repositories.JiraIssueRepository {
	return &jiraIssueRepository{table[*jira.Issue]{db: db, sc: jiraIssueSchema}}
}

func (r *jiraIssueRepository) Save(ctx context.Context, i *jira.Issue) error {
	if i.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO jira_issues (tenant_id, jira_id, key, summary, status, project_id, team_id, assignee_id,
			                         created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (tenant_id, jira_id) DO UPDATE SET
			    key = EXCLUDED.key,
			    summary = EXCLUDED.summary,
			    status = COALESCE(NULLIF(EXCLUDED.status, ''), jira_issues.status),
			    project_id = EXCLUDED.project_id,
			    team_id = EXCLUDED.team_id,
			    assignee_id = EXCLUDED.assignee_id,
			    updated_at = now()
			RETURNING id, status, created_at, updated_at`,
			i.TenantID, i.JiraID, i.Key, i.Summary, i.Status, i.ProjectID, i.TeamID, i.AssigneeID,
			i.CreatedAt, i.UpdatedAt).
			Scan(&i.ID, &i.Status, &i.CreatedAt, &i.UpdatedAt)
		return mapError(err)
	}
	i.UpdatedAt = time.Now().UTC()
	return execOne(ctx, r.db, `
		UPDATE jira_issues
		SET jira_id = $1, key = $2, summary = $3, status = $4, project_id = $5, team_id = $6,
		    assignee_id = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`,
		i.JiraID, i.Key, i.Summary, i.Status, i.ProjectID, i.TeamID, i.AssigneeID, i.UpdatedAt, i.ID, i.TenantID)
}

// execOne runs an update that must touch exactly one tenant row.
func execOne(ctx context.Context, db DBTX, sql string, args ...any) error {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
