//go:build integration

package postgres

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"worklog/internal/catalog"
	"worklog/internal/domain/jira"
	"worklog/internal/domain/worklog"
	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: WORKLOG_TEST_DSN=postgres://... go test -tags integration ./internal/store/postgres
const ddl = `
DROP TABLE IF EXISTS time_entries, jira_issues, jira_teams, jira_projects, users, jira_users;
CREATE TABLE jira_users (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, account_id text NOT NULL,
	display_name text NOT NULL, email text NOT NULL DEFAULT '', active boolean NOT NULL DEFAULT true,
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, account_id));
CREATE TABLE users (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, jira_user_id bigint REFERENCES jira_users(id),
	name text NOT NULL, email text NOT NULL, role text NOT NULL, password_hash text NOT NULL,
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, email));
CREATE TABLE jira_projects (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, jira_id bigint NOT NULL, key text NOT NULL,
	name text NOT NULL, lead_id bigint REFERENCES jira_users(id),
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, jira_id));
CREATE TABLE jira_teams (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, tempo_id bigint NOT NULL, name text NOT NULL,
	lead_id bigint REFERENCES jira_users(id),
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, tempo_id));
CREATE TABLE jira_issues (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, jira_id bigint NOT NULL, key text NOT NULL,
	summary text NOT NULL, status text NOT NULL DEFAULT '', project_id bigint NOT NULL REFERENCES jira_projects(id),
	team_id bigint REFERENCES jira_teams(id), assignee_id bigint REFERENCES jira_users(id),
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, jira_id));
CREATE TABLE time_entries (
	id bigserial PRIMARY KEY, tenant_id bigint NOT NULL, tempo_worklog_id bigint,
	issue_id bigint NOT NULL REFERENCES jira_issues(id), author_id bigint NOT NULL REFERENCES jira_users(id),
	description text NOT NULL DEFAULT '', started_at timestamptz NOT NULL,
	time_spent_seconds integer NOT NULL, billable_seconds integer NOT NULL,
	created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL,
	UNIQUE (tenant_id, tempo_worklog_id));
`

func openTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := os.Getenv("WORKLOG_TEST_DSN")
	if dsn == "" {
		t.Skip("WORKLOG_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, ddl)
	require.NoError(t, err)
	return NewRepo(pool)
}

func TestRepositoriesEndToEnd(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	const tenantID = int64(1)

	author, err := jira.NewUser(tenantID, "acc-1", "Grace", "grace@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.JiraUsers.Save(ctx, author))

	project, err := jira.NewProject(tenantID, 100, "ops", "Operations")
	require.NoError(t, err)
	project.LeadID = &author.ID
	require.NoError(t, repo.JiraProjects.Save(ctx, project))

	issue, err := jira.NewIssue(tenantID, 200, "ops-1", "Rotate keys", project.ID)
	require.NoError(t, err)
	issue.AssigneeID = &author.ID
	require.NoError(t, repo.JiraIssues.Save(ctx, issue))

	start := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	for i, spent := range []int{600, 3600, 7200} {
		e, err := worklog.NewTimeEntry(tenantID, issue.ID, author.ID, start.Add(time.Duration(i)*time.Hour), spent, "work")
		require.NoError(t, err)
		require.NoError(t, repo.TimeEntries.Save(ctx, e))
	}

	values, err := url.ParseQuery("filter[time_spent_seconds][gte]=3600&sort=-time_spent_seconds&relations=issue,issue.user&page[size]=1")
	require.NoError(t, err)
	req, err := query.Parse(values, catalog.New().Get(catalog.TimeEntries), 100)
	require.NoError(t, err)

	page, err := repo.TimeEntries.FindByParams(ctx, tenantID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 7200, page.Items[0].TimeSpentSeconds)
	require.NotNil(t, page.Items[0].Issue)
	assert.Equal(t, "OPS-1", page.Items[0].Issue.Key)
	require.NotNil(t, page.Items[0].Issue.Assignee)
	assert.Equal(t, "Grace", page.Items[0].Issue.Assignee.DisplayName)

	// other tenants see nothing
	other, err := repo.TimeEntries.FindByParams(ctx, 2, req)
	require.NoError(t, err)
	assert.Zero(t, other.Total)

	_, err = repo.TimeEntries.FindByID(ctx, 2, page.Items[0].ID, query.Relations{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	tx, err := repo.UnitOfWork.Begin(ctx)
	require.NoError(t, err)
	u, err := jira.NewUser(1, "acc-2", "Linus", "")
	require.NoError(t, err)
	require.NoError(t, tx.JiraUsers().Save(ctx, u))
	require.NoError(t, tx.Rollback(ctx))

	_, err = repo.JiraUsers.FindByID(ctx, 1, u.ID, query.Relations{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpsertReturnsStoredRow(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first, err := jira.NewUser(1, "acc-3", "Barbara", "barbara@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.JiraUsers.Save(ctx, first))

	// the sync feed sends the same account again, without an email
	again, err := jira.NewUser(1, "acc-3", "Barbara L.", "")
	require.NoError(t, err)
	again.CreatedAt = first.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.JiraUsers.Save(ctx, again))

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "barbara@example.com", again.Email)
	assert.WithinDuration(t, first.CreatedAt, again.CreatedAt, time.Millisecond)

	stored, err := repo.JiraUsers.FindByID(ctx, 1, again.ID, query.Relations{})
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(again.CreatedAt))
	assert.True(t, stored.UpdatedAt.Equal(again.UpdatedAt))
}
