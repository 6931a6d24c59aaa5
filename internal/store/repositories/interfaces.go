package repositories

import (
	"context"
	"errors"

	"worklog/internal/domain/jira"
	"worklog/internal/domain/user"
	"worklog/internal/domain/worklog"
	"worklog/internal/query"
)

var (
	// ErrNotFound is returned when no row matches inside the tenant.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write hits a unique constraint.
	ErrConflict = errors.New("record conflicts with an existing one")
	// ErrInvalidReference is returned when a write points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Page is one window of a filtered listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  query.Page
}

// Repository is the data access contract shared by every resource. All
// operations are scoped to one tenant.
type Repository[T any] interface {
	// FindByParams applies filters, sort, pagination and relation loading.
	FindByParams(ctx context.Context, tenantID int64, req *query.Request) (*Page[T], error)
	FindByID(ctx context.Context, tenantID, id int64, rel query.Relations) (T, error)
	Save(ctx context.Context, item T) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type (
	UserRepository        = Repository[*user.User]
	JiraUserRepository    = Repository[*jira.User]
	JiraProjectRepository = Repository[*jira.Project]
	JiraTeamRepository    = Repository[*jira.Team]
	JiraIssueRepository   = Repository[*jira.Issue]
	TimeEntryRepository   = Repository[*worklog.TimeEntry]
)

// UnitOfWork defines transactional operations
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction defines a database transaction
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	JiraIssues() JiraIssueRepository
	JiraUsers() JiraUserRepository
	TimeEntries() TimeEntryRepository
}
