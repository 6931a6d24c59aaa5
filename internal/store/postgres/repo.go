package postgres

import (
	"context"

	"worklog/internal/store/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo bundles the pool-backed repositories.
type Repo struct {
	db *pgxpool.Pool

	Users        repositories.UserRepository
	JiraUsers    repositories.JiraUserRepository
	JiraProjects repositories.JiraProjectRepository
	JiraTeams    repositories.JiraTeamRepository
	JiraIssues   repositories.JiraIssueRepository
	TimeEntries  repositories.TimeEntryRepository
	UnitOfWork   repositories.UnitOfWork
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:           db,
		Users:        NewUserRepository(db),
		JiraUsers:    NewJiraUserRepository(db),
		JiraProjects: NewJiraProjectRepository(db),
		JiraTeams:    NewJiraTeamRepository(db),
		JiraIssues:   NewJiraIssueRepository(db),
		TimeEntries:  NewTimeEntryRepository(db),
		UnitOfWork:   NewUnitOfWork(db),
	}
}

// Ping checks the pool, used by the health endpoint.
func (r *Repo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
