package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	logoutFn   func(ctx context.Context, refreshToken string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.logoutFn(ctx, refreshToken)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{domain.RoleUser},
		Status:   domain.StatusActive,
	}
}

func TestAuthHandler_Register_Created(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Username != "alice" || input.Password != "password1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleUser(), nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"password1","email":"alice@example.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got userSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != "user-1" || got.Username != "alice" {
		t.Fatalf("unexpected body: %+v", got)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be reached on invalid input")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"password":"password1"}`},
		{"short password", `{"username":"alice","password":"short"}`},
		{"bad email", `{"username":"alice","password":"password1","email":"not-an-email"}`},
		{"malformed json", `{"username":`},
	}
	for _, tc := range cases {
		c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register", tc.body)
		err := h.Register(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 HTTPError, got %v", tc.name, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"password1"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passed through, got %v", err)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
			if username != "alice" || password != "password1" {
				t.Fatalf("unexpected credentials: %s/%s", username, password)
			}
			return &ports.TokenPair{
				AccessToken:  "access.jwt",
				RefreshToken: "refresh.jwt",
				ExpiresAt:    expires,
			}, sampleUser(), nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"password1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.AccessToken != "access.jwt" || got.RefreshToken != "refresh.jwt" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Fatalf("expected expiry %v, got %v", expires, got.ExpiresAt)
	}
	if got.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"ghost","password":"whatever1"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passed through, got %v", err)
	}
}

func TestAuthHandler_Refresh_OK(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		refreshFn: func(_ context.Context, token string) (*ports.TokenPair, error) {
			if token != "refresh.jwt" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &ports.TokenPair{AccessToken: "new.access", RefreshToken: "new.refresh"}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"refresh.jwt"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.AccessToken != "new.access" || got.RefreshToken != "new.refresh" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		refreshFn: func(context.Context, string) (*ports.TokenPair, error) {
			t.Fatal("service must not be reached without a token")
			return nil, nil
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/refresh", `{}`)
	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout_NoContent(t *testing.T) {
	var revoked string
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/logout",
		`{"refreshToken":"refresh.jwt"}`)
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "refresh.jwt" {
		t.Fatalf("expected token passed to service, got %q", revoked)
	}
}
