package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worklog/internal/domain"
	"worklog/internal/domain/worklog"
	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// CreateRequest represents a new time entry
type CreateRequest struct {
	TempoWorklogID   *int64    `json:"tempo_worklog_id,omitempty"`
	IssueID          int64     `json:"issue_id"`
	AuthorID         int64     `json:"author_id"`
	Description      string    `json:"description"`
	StartedAt        time.Time `json:"started_at"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	BillableSeconds  *int      `json:"billable_seconds,omitempty"`
}

// UpdateRequest carries the fields to change; nil fields are left alone
type UpdateRequest struct {
	TempoWorklogID   *int64     `json:"tempo_worklog_id,omitempty"`
	IssueID          *int64     `json:"issue_id,omitempty"`
	AuthorID         *int64     `json:"author_id,omitempty"`
	Description      *string    `json:"description,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	TimeSpentSeconds *int       `json:"time_spent_seconds,omitempty"`
	BillableSeconds  *int       `json:"billable_seconds,omitempty"`
}

// Service handles time entry writes. Reference checks and the write share
// one transaction.
type Service struct {
	uow     repositories.UnitOfWork
	entries repositories.TimeEntryRepository
}

// NewService creates a new time entry service
func NewService(uow repositories.UnitOfWork, entries repositories.TimeEntryRepository) *Service {
	return &Service{uow: uow, entries: entries}
}

// Create validates and stores a time entry
func (s *Service) Create(ctx context.Context, tenantID int64, req CreateRequest) (*worklog.TimeEntry, error) {
	e, err := worklog.NewTimeEntry(tenantID, req.IssueID, req.AuthorID, req.StartedAt, req.TimeSpentSeconds, req.Description)
	if err != nil {
		return nil, err
	}
	e.TempoWorklogID = req.TempoWorklogID
	if req.BillableSeconds != nil {
		e.BillableSeconds = *req.BillableSeconds
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	err = s.inTx(ctx, "create_time_entry", func(tx repositories.Transaction) error {
		if err := checkRefs(ctx, tx, e); err != nil {
			return err
		}
		return tx.TimeEntries().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("tenant_id", tenantID).
		Int64("time_entry_id", e.ID).
		Int64("issue_id", e.IssueID).
		Int("seconds", e.TimeSpentSeconds).
		Msg("time entry created")
	return e, nil
}

// Update applies the non-nil fields of req to an existing time entry
func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateRequest) (*worklog.TimeEntry, error) {
	e, err := s.entries.FindByID(ctx, tenantID, id, query.Relations{})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, &ServiceError{Op: "find_time_entry", Err: err}
	}

	if req.TempoWorklogID != nil {
		e.TempoWorklogID = req.TempoWorklogID
	}
	if req.IssueID != nil {
		e.IssueID = *req.IssueID
	}
	if req.AuthorID != nil {
		e.AuthorID = *req.AuthorID
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.StartedAt != nil {
		e.StartedAt = req.StartedAt.UTC()
	}
	if req.TimeSpentSeconds != nil {
		e.TimeSpentSeconds = *req.TimeSpentSeconds
	}
	if req.BillableSeconds != nil {
		e.BillableSeconds = *req.BillableSeconds
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, "update_time_entry", func(tx repositories.Transaction) error {
		if req.IssueID != nil || req.AuthorID != nil {
			if err := checkRefs(ctx, tx, e); err != nil {
				return err
			}
		}
		return tx.TimeEntries().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func checkRefs(ctx context.Context, tx repositories.Transaction, e *worklog.TimeEntry) error {
	if _, err := tx.JiraIssues().FindByID(ctx, e.TenantID, e.IssueID, query.Relations{}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Invalid("issue_id", "issue %d does not exist", e.IssueID)
		}
		return err
	}
	if _, err := tx.JiraUsers().FindByID(ctx, e.TenantID, e.AuthorID, query.Relations{}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Invalid("author_id", "jira user %d does not exist", e.AuthorID)
		}
		return err
	}
	return nil
}

func (s *Service) inTx(ctx context.Context, op string, fn func(tx repositories.Transaction) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			log.Error().Err(err).Str("op", op).Msg("rollback failed")
		}
	}()

	if err := fn(tx); err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve),
			errors.Is(err, repositories.ErrNotFound),
			errors.Is(err, repositories.ErrConflict),
			errors.Is(err, repositories.ErrInvalidReference):
			return err
		}
		return &ServiceError{Op: op, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	return nil
}

// ServiceError represents a service operation error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("worklog service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
