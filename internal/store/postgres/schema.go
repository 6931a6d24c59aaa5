package postgres

import (
	"strings"

	"worklog/internal/domain/jira"
	"worklog/internal/domain/user"
	"worklog/internal/domain/worklog"

	"github.com/jackc/pgx/v5"
)

// schema describes how one table maps onto its domain type.
type schema struct {
	table     string
	columns   []string
	scan      func(row pgx.Row) (any, error)
	id        func(m any) int64
	relations map[string]belongsTo
}

// belongsTo is a relation resolved through a foreign key on the owner row.
type belongsTo struct {
	target *schema
	key    func(owner any) *int64
	set    func(owner, related any)
}

func (s *schema) hasColumn(name string) bool {
	for _, c := range s.columns {
		if c == name {
			return true
		}
	}
	return false
}

func (s *schema) selectList() string {
	cols := make([]string, len(s.columns))
	for i, c := range s.columns {
		cols[i] = quote(c)
	}
	return strings.Join(cols, ", ")
}

var jiraUserSchema = &schema{
	table:   "jira_users",
	columns: []string{"id", "tenant_id", "account_id", "display_name", "email", "active", "created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		u := &jira.User{}
		err := row.Scan(&u.ID, &u.TenantID, &u.AccountID, &u.DisplayName, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt)
		return u, err
	},
	id: func(m any) int64 { return m.(*jira.User).ID },
}

var jiraProjectSchema = &schema{
	table:   "jira_projects",
	columns: []string{"id", "tenant_id", "jira_id", "key", "name", "lead_id", "created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		p := &jira.Project{}
		err := row.Scan(&p.ID, &p.TenantID, &p.JiraID, &p.Key, &p.Name, &p.LeadID, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	},
	id: func(m any) int64 { return m.(*jira.Project).ID },
	relations: map[string]belongsTo{
		"user": {
			target: jiraUserSchema,
			key:    func(m any) *int64 { return m.(*jira.Project).LeadID },
			set:    func(m, r any) { m.(*jira.Project).Lead = r.(*jira.User) },
		},
	},
}

var jiraTeamSchema = &schema{
	table:   "jira_teams",
	columns: []string{"id", "tenant_id", "tempo_id", "name", "lead_id", "created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		t := &jira.Team{}
		err := row.Scan(&t.ID, &t.TenantID, &t.TempoID, &t.Name, &t.LeadID, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	},
	id: func(m any) int64 { return m.(*jira.Team).ID },
	relations: map[string]belongsTo{
		"user": {
			target: jiraUserSchema,
			key:    func(m any) *int64 { return m.(*jira.Team).LeadID },
			set:    func(m, r any) { m.(*jira.Team).Lead = r.(*jira.User) },
		},
	},
}

var jiraIssueSchema = &schema{
	table: "jira_issues",
	columns: []string{"id", "tenant_id", "jira_id", "key", "summary", "status", "project_id", "team_id",
		"assignee_id", "created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		i := &jira.Issue{}
		err := row.Scan(&i.ID, &i.TenantID, &i.JiraID, &i.Key, &i.Summary, &i.Status, &i.ProjectID, &i.TeamID,
			&i.AssigneeID, &i.CreatedAt, &i.UpdatedAt)
		return i, err
	},
	id: func(m any) int64 { return m.(*jira.Issue).ID },
	relations: map[string]belongsTo{
		"project": {
			target: jiraProjectSchema,
			key:    func(m any) *int64 { return &m.(*jira.Issue).ProjectID },
			set:    func(m, r any) { m.(*jira.Issue).Project = r.(*jira.Project) },
		},
		"team": {
			target: jiraTeamSchema,
			key:    func(m any) *int64 { return m.(*jira.Issue).TeamID },
			set:    func(m, r any) { m.(*jira.Issue).Team = r.(*jira.Team) },
		},
		"user": {
			target: jiraUserSchema,
			key:    func(m any) *int64 { return m.(*jira.Issue).AssigneeID },
			set:    func(m, r any) { m.(*jira.Issue).Assignee = r.(*jira.User) },
		},
	},
}

var timeEntrySchema = &schema{
	table: "time_entries",
	columns: []string{"id", "tenant_id", "tempo_worklog_id", "issue_id", "author_id", "description", "started_at",
		"time_spent_seconds", "billable_seconds", "created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		e := &worklog.TimeEntry{}
		err := row.Scan(&e.ID, &e.TenantID, &e.TempoWorklogID, &e.IssueID, &e.AuthorID, &e.Description, &e.StartedAt,
			&e.TimeSpentSeconds, &e.BillableSeconds, &e.CreatedAt, &e.UpdatedAt)
		return e, err
	},
	id: func(m any) int64 { return m.(*worklog.TimeEntry).ID },
	relations: map[string]belongsTo{
		"issue": {
			target: jiraIssueSchema,
			key:    func(m any) *int64 { return &m.(*worklog.TimeEntry).IssueID },
			set:    func(m, r any) { m.(*worklog.TimeEntry).Issue = r.(*jira.Issue) },
		},
		"user": {
			target: jiraUserSchema,
			key:    func(m any) *int64 { return &m.(*worklog.TimeEntry).AuthorID },
			set:    func(m, r any) { m.(*worklog.TimeEntry).Author = r.(*jira.User) },
		},
	},
}

var userSchema = &schema{
	table: "users",
	columns: []string{"id", "tenant_id", "jira_user_id", "name", "email", "role", "password_hash",
		"created_at", "updated_at"},
	scan: func(row pgx.Row) (any, error) {
		u := &user.User{}
		err := row.Scan(&u.ID, &u.TenantID, &u.JiraUserID, &u.Name, &u.Email, &u.Role, &u.PasswordHash,
			&u.CreatedAt, &u.UpdatedAt)
		return u, err
	},
	id: func(m any) int64 { return m.(*user.User).ID },
	relations: map[string]belongsTo{
		"jira_user": {
			target: jiraUserSchema,
			key:    func(m any) *int64 { return m.(*user.User).JiraUserID },
			set:    func(m, r any) { m.(*user.User).JiraUser = r.(*jira.User) },
		},
	},
}
