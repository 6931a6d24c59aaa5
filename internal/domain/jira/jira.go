// Package jira holds the Jira and Tempo entities mirrored per tenant.
package jira

import (
	"net/mail"
	"strings"
	"time"

	"worklog/internal/domain"
	"worklog/internal/resource"
)

// User is a Jira account, the author of worklogs and assignee of issues.
type User struct {
	ID          int64
	TenantID    int64
	AccountID   string
	DisplayName string
	Email       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Project is a Jira project.
type Project struct {
	ID        int64
	TenantID  int64
	JiraID    int64
	Key       string
	Name      string
	LeadID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Lead *User
}

// Team is a Tempo team.
type Team struct {
	ID        int64
	TenantID  int64
	TempoID   int64
	Name      string
	LeadID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Lead *User
}

// Issue is a Jira issue that time is logged against.
type Issue struct {
	ID         int64
	TenantID   int64
	JiraID     int64
	Key        string
	Summary    string
	Status     string
	ProjectID  int64
	TeamID     *int64
	AssigneeID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Project  *Project
	Team     *Team
	Assignee *User
}

// NewUser creates a Jira user with validation
func NewUser(tenantID int64, accountID, displayName, email string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		TenantID:    tenantID,
		AccountID:   strings.TrimSpace(accountID),
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u, u.Validate()
}

// Validate checks the user invariants.
func (u *User) Validate() error {
	if u.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", u.TenantID)
	}
	if u.AccountID == "" {
		return domain.Invalid("account_id", "account ID is required")
	}
	if u.DisplayName == "" {
		return domain.Invalid("display_name", "display name is required")
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return domain.Invalid("email", "invalid email address")
		}
	}
	return nil
}

func (u *User) Attributes() map[string]any {
	return map[string]any{
		"id":           u.ID,
		"account_id":   u.AccountID,
		"display_name": u.DisplayName,
		"email":        u.Email,
		"active":       u.Active,
		"created_at":   u.CreatedAt,
		"updated_at":   u.UpdatedAt,
	}
}

func (u *User) Related() map[string]resource.Model { return nil }

// NewProject creates a project with validation
func NewProject(tenantID, jiraID int64, key, name string) (*Project, error) {
	now := time.Now().UTC()
	p := &Project{
		TenantID:  tenantID,
		JiraID:    jiraID,
		Key:       strings.ToUpper(strings.TrimSpace(key)),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return p, p.Validate()
}

// Validate checks the project invariants.
func (p *Project) Validate() error {
	if p.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", p.TenantID)
	}
	if p.JiraID <= 0 {
		return domain.Invalid("jira_id", "jira ID is required")
	}
	if p.Key == "" {
		return domain.Invalid("key", "project key is required")
	}
	if p.Name == "" {
		return domain.Invalid("name", "project name is required")
	}
	return nil
}

func (p *Project) Attributes() map[string]any {
	return map[string]any{
		"id":         p.ID,
		"jira_id":    p.JiraID,
		"key":        p.Key,
		"name":       p.Name,
		"lead_id":    p.LeadID,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func (p *Project) Related() map[string]resource.Model {
	out := map[string]resource.Model{}
	if p.Lead != nil {
		out["user"] = p.Lead
	}
	return out
}

// NewTeam creates a team with validation
func NewTeam(tenantID, tempoID int64, name string) (*Team, error) {
	now := time.Now().UTC()
	t := &Team{
		TenantID:  tenantID,
		TempoID:   tempoID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t, t.Validate()
}

// Validate checks the team invariants.
func (t *Team) Validate() error {
	if t.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", t.TenantID)
	}
	if t.TempoID <= 0 {
		return domain.Invalid("tempo_id", "tempo ID is required")
	}
	if t.Name == "" {
		return domain.Invalid("name", "team name is required")
	}
	return nil
}

func (t *Team) Attributes() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"tempo_id":   t.TempoID,
		"name":       t.Name,
		"lead_id":    t.LeadID,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func (t *Team) Related() map[string]resource.Model {
	out := map[string]resource.Model{}
	if t.Lead != nil {
		out["user"] = t.Lead
	}
	return out
}

// NewIssue creates an issue with validation
func NewIssue(tenantID, jiraID int64, key, summary string, projectID int64) (*Issue, error) {
	now := time.Now().UTC()
	i := &Issue{
		TenantID:  tenantID,
		JiraID:    jiraID,
		Key:       strings.ToUpper(strings.TrimSpace(key)),
		Summary:   strings.TrimSpace(summary),
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return i, i.Validate()
}

// Validate checks the issue invariants.
func (i *Issue) Validate() error {
	if i.TenantID <= 0 {
		return domain.Invalid("tenant_id", "invalid tenant ID: %d", i.TenantID)
	}
	if i.JiraID <= 0 {
		return domain.Invalid("jira_id", "jira ID is required")
	}
	if i.Key == "" {
		return domain.Invalid("key", "issue key is required")
	}
	if i.ProjectID <= 0 {
		return domain.Invalid("project_id", "project is required")
	}
	return nil
}

func (i *Issue) Attributes() map[string]any {
	return map[string]any{
		"id":          i.ID,
		"jira_id":     i.JiraID,
		"key":         i.Key,
		"summary":     i.Summary,
		"status":      i.Status,
		"project_id":  i.ProjectID,
		"team_id":     i.TeamID,
		"assignee_id": i.AssigneeID,
		"created_at":  i.CreatedAt,
		"updated_at":  i.UpdatedAt,
	}
}

func (i *Issue) Related() map[string]resource.Model {
	out := map[string]resource.Model{}
	if i.Project != nil {
		out["project"] = i.Project
	}
	if i.Team != nil {
		out["team"] = i.Team
	}
	if i.Assignee != nil {
		out["user"] = i.Assignee
	}
	return out
}
