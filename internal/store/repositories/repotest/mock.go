// Package repotest provides a testify mock of repositories.Repository.
package repotest

import (
	"context"

	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/stretchr/testify/mock"
)

// Repo mocks repositories.Repository[T].
type Repo[T any] struct {
	mock.Mock
}

func (m *Repo[T]) FindByParams(ctx context.Context, tenantID int64, req *query.Request) (*repositories.Page[T], error) {
	args := m.Called(ctx, tenantID, req)
	p, _ := args.Get(0).(*repositories.Page[T])
	return p, args.Error(1)
}

func (m *Repo[T]) FindByID(ctx context.Context, tenantID, id int64, rel query.Relations) (T, error) {
	args := m.Called(ctx, tenantID, id, rel)
	v, _ := args.Get(0).(T)
	return v, args.Error(1)
}

func (m *Repo[T]) Save(ctx context.Context, item T) error {
	return m.Called(ctx, item).Error(0)
}

func (m *Repo[T]) Delete(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}
