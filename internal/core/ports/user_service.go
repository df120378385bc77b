package ports

import (
	"context"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// ListUsersResult is returned by List.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService covers the profile operations available to every authenticated
// user plus the admin-only account management operations. Role checks happen
// at the route layer; ownership checks happen here.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, email, fullName string) (*domain.User, error)

	// Admin operations.
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	UpdateRoles(ctx context.Context, actor domain.Identity, id string, roles []string) (*domain.User, error)
	SetStatus(ctx context.Context, actor domain.Identity, id string, status domain.UserStatus) (*domain.User, error)
}
