package postgres

import (
	"context"

	"worklog/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork implements UnitOfWork interface
type unitOfWork struct {
	db *pgxpool.Pool
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(db *pgxpool.Pool) repositories.UnitOfWork {
	return &unitOfWork{db: db}
}

// Begin starts a new read-committed transaction
func (uow *unitOfWork) Begin(ctx context.Context) (repositories.Transaction, error) {
	tx, err := uow.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx}, nil
}

// transaction implements Transaction interface; its repositories run on the
// same pgx.Tx.
type transaction struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction. It is a no-op after Commit.
func (t *transaction) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}
	return err
}

func (t *transaction) JiraIssues() repositories.JiraIssueRepository {
	return NewJiraIssueRepository(t.tx)
}

func (t *transaction) JiraUsers() repositories.JiraUserRepository {
	return NewJiraUserRepository(t.tx)
}

func (t *transaction) TimeEntries() repositories.TimeEntryRepository {
	return NewTimeEntryRepository(t.tx)
}
