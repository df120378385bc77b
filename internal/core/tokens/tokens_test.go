package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Roles:    []string{domain.RoleUser},
		Status:   domain.StatusActive,
	}
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	issued, err := issuer.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	claims, err := issuer.ParseAccess(issued.Token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %s", claims.Username)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if claims.TokenType != TypeAccess {
		t.Fatalf("expected access token type, got %s", claims.TokenType)
	}
}

func TestIssueAccess_ExpiryEqualsIssuedAtPlusTTL(t *testing.T) {
	ttl := 30 * time.Minute
	issuer := NewIssuer("secret", ttl, 24*time.Hour)

	issued, err := issuer.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if got := issued.ExpiresAt.Sub(issued.IssuedAt); got != ttl {
		t.Fatalf("expected expiry = issuedAt + %v, got %v", ttl, got)
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := NewIssuer("secret", time.Nanosecond, 24*time.Hour)

	issued, err := issuer.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := issuer.ParseAccess(issued.Token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// Repeating the failed validation yields the same error kind.
	if _, err := issuer.ParseAccess(issued.Token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired on retry, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)
	other := NewIssuer("different", time.Hour, 24*time.Hour)

	issued, err := issuer.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	if _, err := other.ParseAccess(issued.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	if _, err := issuer.Parse("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccess_RejectsRefreshToken(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	refresh, err := issuer.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := issuer.ParseAccess(refresh.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh token, got %v", err)
	}
}

func TestIssueRefresh_HasUniqueID(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	first, err := issuer.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	second, err := issuer.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatalf("expected non-empty jti")
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct jti per refresh token")
	}

	claims, err := issuer.ParseRefresh(first.Token)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if claims.ID != first.ID {
		t.Fatalf("expected jti %s, got %s", first.ID, claims.ID)
	}
}

func TestParseRefresh_RejectsAccessToken(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 24*time.Hour)

	access, err := issuer.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	if _, err := issuer.ParseRefresh(access.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token, got %v", err)
	}
}
