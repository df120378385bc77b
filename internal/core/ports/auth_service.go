package ports

import (
	"context"
	"time"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// TokenPair is returned on login and refresh. ExpiresAt is the access-token
// expiry; the refresh token carries its own, longer lifetime.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService implements the credential and token lifecycle: registration,
// login, refresh-token rotation, and logout (refresh revocation).
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	// Refresh validates an unexpired, unrevoked refresh token, revokes it,
	// and returns a fresh pair (rotation).
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// RevocationStore tracks revoked refresh-token ids. Revoked tokens must be
// rejected even while cryptographically valid.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
