package ports

import (
	"context"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for listing users.
type ListUsersFilter struct {
	Status string // optional: "active" or "disabled"
	Role   string // optional: filter by role name
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// UserRepository defines persistence operations for user accounts.
// Updates must be atomic per document so concurrent login/refresh/admin
// operations never observe a half-written record.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateProfile sets email and full name.
	UpdateProfile(ctx context.Context, id, email, fullName string) (*domain.User, error)
	// UpdateRoles replaces the role set.
	UpdateRoles(ctx context.Context, id string, roles []string) (*domain.User, error)
	// UpdateStatus enables or disables the account (soft delete).
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
