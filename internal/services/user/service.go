package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"worklog/internal/domain"
	"worklog/internal/domain/user"
	"worklog/internal/query"
	"worklog/internal/store/repositories"
)

// CreateRequest represents a new application user
type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	Password   string `json:"password"`
	JiraUserID *int64 `json:"jira_user_id,omitempty"`
}

// UpdateRequest carries the fields to change; nil fields are left alone
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Password   *string `json:"password,omitempty"`
	JiraUserID *int64  `json:"jira_user_id,omitempty"`
}

// Service handles application user management
type Service struct {
	userRepo     repositories.UserRepository
	jiraUserRepo repositories.JiraUserRepository
}

// NewService creates a new user service
func NewService(userRepo repositories.UserRepository, jiraUserRepo repositories.JiraUserRepository) *Service {
	return &Service{userRepo: userRepo, jiraUserRepo: jiraUserRepo}
}

// Create validates and stores a new user
func (s *Service) Create(ctx context.Context, tenantID int64, req CreateRequest) (*user.User, error) {
	u, err := user.NewUser(tenantID, req.Name, req.Email, user.Role(strings.ToLower(strings.TrimSpace(req.Role))), req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.linkJiraUser(ctx, u, req.JiraUserID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies the non-nil fields of req to an existing user
func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateRequest) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, tenantID, id, query.Relations{})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, &ServiceError{Op: "find_user", Err: err}
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		u.Role = user.Role(strings.ToLower(strings.TrimSpace(*req.Role)))
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if req.Password != nil {
		if err := u.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.JiraUserID != nil {
		if err := s.linkJiraUser(ctx, u, req.JiraUserID); err != nil {
			return nil, err
		}
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) linkJiraUser(ctx context.Context, u *user.User, jiraUserID *int64) error {
	if jiraUserID == nil {
		return nil
	}
	if *jiraUserID == 0 {
		u.JiraUserID = nil
		return nil
	}
	if _, err := s.jiraUserRepo.FindByID(ctx, u.TenantID, *jiraUserID, query.Relations{}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Invalid("jira_user_id", "jira user %d does not exist", *jiraUserID)
		}
		return &ServiceError{Op: "find_jira_user", Err: err}
	}
	u.JiraUserID = jiraUserID
	return nil
}

func (s *Service) save(ctx context.Context, u *user.User) error {
	if err := s.userRepo.Save(ctx, u); err != nil {
		switch {
		case errors.Is(err, repositories.ErrConflict):
			return domain.Invalid("email", "email is already taken")
		case errors.Is(err, repositories.ErrNotFound):
			return err
		}
		return &ServiceError{Op: "save_user", Err: err}
	}
	return nil
}

// ServiceError represents a service operation error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("user service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
