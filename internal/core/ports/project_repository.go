package ports

import (
	"context"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for listing projects.
type ListProjectsFilter struct {
	OwnerID  string // optional: only projects owned by this user
	MemberID string // optional: only projects this user is a member of
	Page     int    // 1-based
	Limit    int    // capped at 100 by the service
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, id, userID string) (*domain.Project, error)
	RemoveMember(ctx context.Context, id, userID string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
}
