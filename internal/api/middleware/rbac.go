package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// RequireRole enforces the role hierarchy: the request's role level must be
// at least the required role's level (consumer < creator < admin).
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)
			if !role.AtLeast(required) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
