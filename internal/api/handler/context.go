package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/event-management-api/internal/api/middleware"
	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a user id must be
// present, which proves the middleware ran on this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || identity.UserID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
