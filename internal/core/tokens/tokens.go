// Package tokens issues and validates the HS256 JWTs used for API access.
// Access tokens are short-lived and carry the role claims; refresh tokens
// additionally carry a unique jti so individual tokens can be revoked.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	defaultIssuer = "event-management-api"
)

// Claims is the JWT payload for both token types. Subject holds the user id.
type Claims struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}

// Issued is the result of minting a token.
type Issued struct {
	Token     string
	ID        string // jti, set for refresh tokens
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer mints and parses signed tokens with a shared HMAC secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

// NewIssuer builds an Issuer. Non-positive TTLs fall back to 24h access /
// 7d refresh.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     defaultIssuer,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// IssueAccess mints an access token for the user. Expiry is issued-at plus
// the configured access TTL.
func (i *Issuer) IssueAccess(user *domain.User) (*Issued, error) {
	return i.issue(user, TypeAccess, "", i.accessTTL)
}

// IssueRefresh mints a refresh token with a fresh jti.
func (i *Issuer) IssueRefresh(user *domain.User) (*Issued, error) {
	return i.issue(user, TypeRefresh, uuid.NewString(), i.refreshTTL)
}

func (i *Issuer) issue(user *domain.User, tokenType, jti string, ttl time.Duration) (*Issued, error) {
	// Truncate to NumericDate precision so the struct matches the claim.
	now := time.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	claims := &Claims{
		Username:  user.Username,
		Roles:     user.Roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &Issued{
		Token:     signed,
		ID:        jti,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies signature and expiry and returns the claims. Expired tokens
// map to domain.ErrTokenExpired, every other failure to domain.ErrTokenInvalid.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ParseAccess parses a token and rejects anything that is not an access
// token, so refresh tokens cannot be replayed against protected routes.
func (i *Issuer) ParseAccess(tokenString string) (*Claims, error) {
	claims, err := i.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ParseRefresh parses a token and rejects anything that is not a refresh
// token with a jti.
func (i *Issuer) ParseRefresh(tokenString string) (*Claims, error) {
	claims, err := i.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh || claims.ID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
