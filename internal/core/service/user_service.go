package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type userService struct {
	repo   ports.UserRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, logger zerolog.Logger) ports.UserService {
	return &userService{repo: repo, audit: audit, logger: logger}
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id, email, fullName string) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, id, email, fullName)
}

func (s *userService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateRoles replaces a user's role set. Admins cannot strip their own
// admin role, which would otherwise lock the last admin out.
func (s *userService) UpdateRoles(ctx context.Context, actor domain.Identity, id string, roles []string) (*domain.User, error) {
	if len(roles) == 0 {
		return nil, domain.ErrValidation
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, domain.ErrValidation
		}
	}
	if actor.UserID == id && !containsRole(roles, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.UpdateRoles(ctx, id, roles)
	if err != nil {
		return nil, err
	}

	s.record(actor, user, domain.AuditRoleChange)
	s.logger.Info().Str("user_id", id).Strs("roles", roles).Str("actor", actor.UserID).Msg("roles updated")
	return user, nil
}

// SetStatus soft-disables or re-enables an account. Admins cannot disable
// themselves.
func (s *userService) SetStatus(ctx context.Context, actor domain.Identity, id string, status domain.UserStatus) (*domain.User, error) {
	if status != domain.StatusActive && status != domain.StatusDisabled {
		return nil, domain.ErrValidation
	}
	if actor.UserID == id && status == domain.StatusDisabled {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	action := domain.AuditUserEnabled
	if status == domain.StatusDisabled {
		action = domain.AuditUserDisabled
	}
	s.record(actor, user, action)
	s.logger.Info().Str("user_id", id).Str("status", string(status)).Str("actor", actor.UserID).Msg("status updated")
	return user, nil
}

func (s *userService) record(actor domain.Identity, target *domain.User, action domain.AuditAction) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		UserID:    target.ID,
		Username:  target.Username,
		Action:    action,
		Detail:    "by " + actor.UserID,
		Timestamp: time.Now().UTC(),
	})
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
