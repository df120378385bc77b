package ports

import (
	"context"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries the mutable fields of a project. Nil pointers
// mean "leave unchanged".
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ListProjectsResult is returned by List.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects. Mutations and
// member management are restricted to the owner or an admin.
type ProjectService interface {
	Create(ctx context.Context, actor domain.Identity, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) (*ListProjectsResult, error)
	Update(ctx context.Context, actor domain.Identity, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
	AddMember(ctx context.Context, actor domain.Identity, id, userID string) (*domain.Project, error)
	RemoveMember(ctx context.Context, actor domain.Identity, id, userID string) (*domain.Project, error)
}
