package data

import (
	"context"
	"errors"

	"worklog/internal/query"
	"worklog/internal/store/repositories"
)

// Service handles read and delete operations for one resource type
type Service[T any] struct {
	name string
	repo repositories.Repository[T]
}

// NewService creates a new data service for the named resource
func NewService[T any](name string, repo repositories.Repository[T]) *Service[T] {
	return &Service[T]{name: name, repo: repo}
}

// Name returns the resource name the service was built for.
func (s *Service[T]) Name() string { return s.name }

// List retrieves one filtered, sorted page for a tenant
func (s *Service[T]) List(ctx context.Context, tenantID int64, req *query.Request) (*repositories.Page[T], error) {
	page, err := s.repo.FindByParams(ctx, tenantID, req)
	if err != nil {
		return nil, &ServiceError{Op: "list_" + s.name, Err: err}
	}
	return page, nil
}

// Get retrieves a single record with the requested relations
func (s *Service[T]) Get(ctx context.Context, tenantID, id int64, rel query.Relations) (T, error) {
	item, err := s.repo.FindByID(ctx, tenantID, id, rel)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return item, err
		}
		return item, &ServiceError{Op: "get_" + s.name, Err: err}
	}
	return item, nil
}

// Delete removes a single record
func (s *Service[T]) Delete(ctx context.Context, tenantID, id int64) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return &ServiceError{Op: "delete_" + s.name, Err: err}
	}
	return nil
}

// ServiceError represents a data service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "data service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
