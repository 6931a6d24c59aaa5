package data

import (
	"context"
	"errors"
	"testing"

	"worklog/internal/domain/jira"
	"worklog/internal/query"
	"worklog/internal/store/repositories"
	"worklog/internal/store/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListPassesRequestThrough(t *testing.T) {
	repo := new(repotest.Repo[*jira.User])
	req := &query.Request{Page: query.Page{Number: 1, Size: 30}}
	want := &repositories.Page[*jira.User]{Items: []*jira.User{{ID: 1}}, Total: 1, Page: req.Page}
	repo.On("FindByParams", mock.Anything, int64(4), req).Return(want, nil)

	got, err := NewService[*jira.User]("jira-users", repo).List(context.Background(), 4, req)
	require.NoError(t, err)
	assert.Same(t, want, got)
	repo.AssertExpectations(t)
}

func TestListWrapsErrors(t *testing.T) {
	repo := new(repotest.Repo[*jira.User])
	repo.On("FindByParams", mock.Anything, int64(4), mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewService[*jira.User]("jira-users", repo).List(context.Background(), 4, &query.Request{})
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list_jira-users", se.Op)
}

func TestGetAndDeleteKeepNotFound(t *testing.T) {
	repo := new(repotest.Repo[*jira.User])
	repo.On("FindByID", mock.Anything, int64(1), int64(2), mock.Anything).Return(nil, repositories.ErrNotFound)
	repo.On("Delete", mock.Anything, int64(1), int64(2)).Return(repositories.ErrNotFound)

	svc := NewService[*jira.User]("jira-users", repo)
	_, err := svc.Get(context.Background(), 1, 2, query.Relations{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 2), repositories.ErrNotFound)

	var se *ServiceError
	assert.False(t, errors.As(err, &se))
}
