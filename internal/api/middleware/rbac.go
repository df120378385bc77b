package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// RBAC enforces role-based access control. Deny by default: without an
// identity the request is rejected with 401, with an identity lacking every
// required role with 403. Any single matching role grants access.
func RBAC(requiredRoles ...string) echo.MiddlewareFunc {
	required := make(map[string]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			for _, role := range identity.Roles {
				if _, allowed := required[role]; allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
