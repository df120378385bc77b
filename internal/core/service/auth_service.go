package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventdesk/event-management-api/internal/api/metrics"
	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
	"github.com/eventdesk/event-management-api/internal/core/tokens"
)

// AuthService implements registration, login, refresh rotation and logout.
type AuthService struct {
	repo        ports.UserRepository
	issuer      *tokens.Issuer
	revocations ports.RevocationStore
	audit       ports.AuditRecorder
	logger      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	issuer *tokens.Issuer,
	revocations ports.RevocationStore,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		issuer:      issuer,
		revocations: revocations,
		audit:       audit,
		logger:      logger,
	}
}

// Register creates a new active account with the USER role.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.record(created.ID, created.Username, domain.AuditRegister, "")
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown users, wrong passwords and disabled accounts all fail closed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.record("", username, domain.AuditLoginFailed, "unknown user")
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.record(user.ID, user.Username, domain.AuditLoginFailed, "password mismatch")
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !user.Active() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.record(user.ID, user.Username, domain.AuditLoginFailed, "account disabled")
		return nil, nil, domain.ErrAccountDisabled
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(user.ID, user.Username, domain.AuditLogin, "")
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("login")
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token is checked against
// the revocation set before its signature is trusted as sufficient, then
// revoked for its remaining lifetime, and a fresh pair is issued with the
// user's current roles and status.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	// Re-read the account so a disabled user or a changed role set takes
	// effect at the next rotation.
	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !user.Active() {
		return nil, domain.ErrAccountDisabled
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.record(user.ID, user.Username, domain.AuditRefresh, "")
	return pair, nil
}

// Logout revokes the presented refresh token. Access tokens stay valid until
// expiry (stateless by design of the token format).
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return err
	}
	if err := s.revoke(ctx, claims); err != nil {
		return err
	}
	s.record(claims.Subject, claims.Username, domain.AuditLogout, "")
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.issuer.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefresh(user)
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(tokens.TypeAccess).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(tokens.TypeRefresh).Inc()

	return &ports.TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresAt:    access.ExpiresAt,
	}, nil
}

// revoke adds the token's jti to the revocation set for its remaining
// lifetime; after expiry the signature check rejects it anyway.
func (s *AuthService) revoke(ctx context.Context, claims *tokens.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

func (s *AuthService) record(userID, username string, action domain.AuditAction, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		UserID:    userID,
		Username:  username,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
