package jira

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"worklog/internal/domain"
	"worklog/internal/domain/jira"
	"worklog/internal/query"
	"worklog/internal/store/repositories"
)

// UserRequest represents Jira user data; nil fields are left alone on update
type UserRequest struct {
	AccountID   *string `json:"account_id,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ProjectRequest represents Jira project data
type ProjectRequest struct {
	JiraID *int64  `json:"jira_id,omitempty"`
	Key    *string `json:"key,omitempty"`
	Name   *string `json:"name,omitempty"`
	LeadID *int64  `json:"lead_id,omitempty"`
}

// TeamRequest represents Tempo team data
type TeamRequest struct {
	TempoID *int64  `json:"tempo_id,omitempty"`
	Name    *string `json:"name,omitempty"`
	LeadID  *int64  `json:"lead_id,omitempty"`
}

// IssueRequest represents Jira issue data
type IssueRequest struct {
	JiraID     *int64  `json:"jira_id,omitempty"`
	Key        *string `json:"key,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	Status     *string `json:"status,omitempty"`
	ProjectID  *int64  `json:"project_id,omitempty"`
	TeamID     *int64  `json:"team_id,omitempty"`
	AssigneeID *int64  `json:"assignee_id,omitempty"`
}

// Service handles writes to the mirrored Jira entities
type Service struct {
	users    repositories.JiraUserRepository
	projects repositories.JiraProjectRepository
	teams    repositories.JiraTeamRepository
	issues   repositories.JiraIssueRepository
}

// NewService creates a new Jira service
func NewService(
	users repositories.JiraUserRepository,
	projects repositories.JiraProjectRepository,
	teams repositories.JiraTeamRepository,
	issues repositories.JiraIssueRepository,
) *Service {
	return &Service{users: users, projects: projects, teams: teams, issues: issues}
}

// CreateUser stores a Jira user, updating it when the account ID is known
func (s *Service) CreateUser(ctx context.Context, tenantID int64, req UserRequest) (*jira.User, error) {
	u, err := jira.NewUser(tenantID, str(req.AccountID), str(req.DisplayName), str(req.Email))
	if err != nil {
		return nil, err
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if err := save(ctx, "save_user", s.users, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser applies req to an existing Jira user
func (s *Service) UpdateUser(ctx context.Context, tenantID, id int64, req UserRequest) (*jira.User, error) {
	u, err := find(ctx, "find_user", s.users, tenantID, id)
	if err != nil {
		return nil, err
	}
	setString(&u.AccountID, req.AccountID)
	setString(&u.DisplayName, req.DisplayName)
	setString(&u.Email, req.Email)
	if req.Active != nil {
		u.Active = *req.Active
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_user", s.users, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateProject stores a Jira project
func (s *Service) CreateProject(ctx context.Context, tenantID int64, req ProjectRequest) (*jira.Project, error) {
	p, err := jira.NewProject(tenantID, i64(req.JiraID), str(req.Key), str(req.Name))
	if err != nil {
		return nil, err
	}
	if err := s.setUserRef(ctx, tenantID, &p.LeadID, req.LeadID, "lead_id"); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_project", s.projects, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject applies req to an existing Jira project
func (s *Service) UpdateProject(ctx context.Context, tenantID, id int64, req ProjectRequest) (*jira.Project, error) {
	p, err := find(ctx, "find_project", s.projects, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.JiraID != nil {
		p.JiraID = *req.JiraID
	}
	if req.Key != nil {
		p.Key = strings.ToUpper(strings.TrimSpace(*req.Key))
	}
	setString(&p.Name, req.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.setUserRef(ctx, tenantID, &p.LeadID, req.LeadID, "lead_id"); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_project", s.projects, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateTeam stores a Tempo team
func (s *Service) CreateTeam(ctx context.Context, tenantID int64, req TeamRequest) (*jira.Team, error) {
	t, err := jira.NewTeam(tenantID, i64(req.TempoID), str(req.Name))
	if err != nil {
		return nil, err
	}
	if err := s.setUserRef(ctx, tenantID, &t.LeadID, req.LeadID, "lead_id"); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_team", s.teams, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTeam applies req to an existing Tempo team
func (s *Service) UpdateTeam(ctx context.Context, tenantID, id int64, req TeamRequest) (*jira.Team, error) {
	t, err := find(ctx, "find_team", s.teams, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.TempoID != nil {
		t.TempoID = *req.TempoID
	}
	setString(&t.Name, req.Name)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.setUserRef(ctx, tenantID, &t.LeadID, req.LeadID, "lead_id"); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_team", s.teams, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateIssue stores a Jira issue after checking its references
func (s *Service) CreateIssue(ctx context.Context, tenantID int64, req IssueRequest) (*jira.Issue, error) {
	i, err := jira.NewIssue(tenantID, i64(req.JiraID), str(req.Key), str(req.Summary), i64(req.ProjectID))
	if err != nil {
		return nil, err
	}
	i.Status = strings.TrimSpace(str(req.Status))
	if err := s.checkIssueRefs(ctx, i, req); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_issue", s.issues, i); err != nil {
		return nil, err
	}
	return i, nil
}

// UpdateIssue applies req to an existing Jira issue
func (s *Service) UpdateIssue(ctx context.Context, tenantID, id int64, req IssueRequest) (*jira.Issue, error) {
	i, err := find(ctx, "find_issue", s.issues, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.JiraID != nil {
		i.JiraID = *req.JiraID
	}
	if req.Key != nil {
		i.Key = strings.ToUpper(strings.TrimSpace(*req.Key))
	}
	setString(&i.Summary, req.Summary)
	setString(&i.Status, req.Status)
	if req.ProjectID != nil {
		i.ProjectID = *req.ProjectID
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkIssueRefs(ctx, i, req); err != nil {
		return nil, err
	}
	if err := save(ctx, "save_issue", s.issues, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) checkIssueRefs(ctx context.Context, i *jira.Issue, req IssueRequest) error {
	if req.ProjectID != nil {
		if err := exists(ctx, s.projects, i.TenantID, i.ProjectID, "project_id"); err != nil {
			return err
		}
	}
	if req.TeamID != nil {
		if *req.TeamID == 0 {
			i.TeamID = nil
		} else {
			if err := exists(ctx, s.teams, i.TenantID, *req.TeamID, "team_id"); err != nil {
				return err
			}
			i.TeamID = req.TeamID
		}
	}
	return s.setUserRef(ctx, i.TenantID, &i.AssigneeID, req.AssigneeID, "assignee_id")
}

// setUserRef points dst at a Jira user. A zero ID clears it, nil leaves it.
func (s *Service) setUserRef(ctx context.Context, tenantID int64, dst **int64, id *int64, field string) error {
	if id == nil {
		return nil
	}
	if *id == 0 {
		*dst = nil
		return nil
	}
	if err := exists(ctx, s.users, tenantID, *id, field); err != nil {
		return err
	}
	*dst = id
	return nil
}

func exists[T any](ctx context.Context, repo repositories.Repository[T], tenantID, id int64, field string) error {
	if _, err := repo.FindByID(ctx, tenantID, id, query.Relations{}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Invalid(field, "record %d does not exist", id)
		}
		return &ServiceError{Op: "check_" + field, Err: err}
	}
	return nil
}

func find[T any](ctx context.Context, op string, repo repositories.Repository[T], tenantID, id int64) (T, error) {
	v, err := repo.FindByID(ctx, tenantID, id, query.Relations{})
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return v, &ServiceError{Op: op, Err: err}
	}
	return v, err
}

func save[T any](ctx context.Context, op string, repo repositories.Repository[T], v T) error {
	err := repo.Save(ctx, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, repositories.ErrConflict),
		errors.Is(err, repositories.ErrInvalidReference):
		return err
	}
	return &ServiceError{Op: op, Err: err}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func i64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// ServiceError represents a service operation error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("jira service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
