package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username string, roles []string) *domain.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
		Roles:        roles,
		Status:       domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return created
}

func adminIdentity(u *domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Username: u.Username, Roles: u.Roles}
}

func TestUserService_GetAndUpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	alice := seedUser(t, repo, "alice", []string{domain.RoleUser})

	got, err := svc.Get(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, "alice@example.com", "Alice A.")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Email != "alice@example.com" || updated.FullName != "Alice A." {
		t.Fatalf("profile not updated: %+v", updated)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_NormalizesPaging(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	seedUser(t, repo, "u1", []string{domain.RoleUser})
	seedUser(t, repo, "u2", []string{domain.RoleUser})

	res, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 0, Limit: -5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.Limit != defaultPageLimit {
		t.Fatalf("expected page 1 limit %d, got page %d limit %d", defaultPageLimit, res.Page, res.Limit)
	}
	if res.Total != 2 || res.TotalPages != 1 {
		t.Fatalf("unexpected totals: %+v", res)
	}

	res, err = svc.List(context.Background(), ports.ListUsersFilter{Page: 1, Limit: 1000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, res.Limit)
	}
}

func TestUserService_UpdateRoles(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})
	bob := seedUser(t, repo, "bob", []string{domain.RoleUser})

	updated, err := svc.UpdateRoles(context.Background(), adminIdentity(admin), bob.ID, []string{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("update roles: %v", err)
	}
	if !updated.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected bob promoted to admin, got %v", updated.Roles)
	}
	if got := audit.actions(); len(got) != 1 || got[0] != domain.AuditRoleChange {
		t.Fatalf("expected role-change audit entry, got %v", got)
	}
}

func TestUserService_UpdateRoles_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})
	bob := seedUser(t, repo, "bob", []string{domain.RoleUser})

	if _, err := svc.UpdateRoles(context.Background(), adminIdentity(admin), bob.ID, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty roles, got %v", err)
	}
	if _, err := svc.UpdateRoles(context.Background(), adminIdentity(admin), bob.ID, []string{"SUPERUSER"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestUserService_UpdateRoles_CannotStripOwnAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})

	if _, err := svc.UpdateRoles(context.Background(), adminIdentity(admin), admin.ID, []string{domain.RoleUser}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Keeping the admin role on oneself is allowed.
	if _, err := svc.UpdateRoles(context.Background(), adminIdentity(admin), admin.ID, []string{domain.RoleAdmin, domain.RoleUser}); err != nil {
		t.Fatalf("expected self-update keeping admin to succeed, got %v", err)
	}
}

func TestUserService_SetStatus(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})
	bob := seedUser(t, repo, "bob", []string{domain.RoleUser})

	disabled, err := svc.SetStatus(context.Background(), adminIdentity(admin), bob.ID, domain.StatusDisabled)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if disabled.Status != domain.StatusDisabled {
		t.Fatalf("expected disabled status, got %s", disabled.Status)
	}

	enabled, err := svc.SetStatus(context.Background(), adminIdentity(admin), bob.ID, domain.StatusActive)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if enabled.Status != domain.StatusActive {
		t.Fatalf("expected active status, got %s", enabled.Status)
	}

	actions := audit.actions()
	if len(actions) != 2 || actions[0] != domain.AuditUserDisabled || actions[1] != domain.AuditUserEnabled {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestUserService_SetStatus_CannotDisableSelf(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})

	if _, err := svc.SetStatus(context.Background(), adminIdentity(admin), admin.ID, domain.StatusDisabled); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())
	admin := seedUser(t, repo, "admin", []string{domain.RoleAdmin})
	bob := seedUser(t, repo, "bob", []string{domain.RoleUser})

	if _, err := svc.SetStatus(context.Background(), adminIdentity(admin), bob.ID, domain.UserStatus("frozen")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
