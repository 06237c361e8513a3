package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

// ctxActor extracts the claims injected by the Auth middleware and performs a
// fast-fail check before any service call: a positive user id proves the
// middleware ran and the token carried a usable identity.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID <= 0 {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(domain.Role)

	return ports.Actor{UserID: userID, Username: username, Email: email, Role: role}, nil
}

// ctxViewer returns the actor when the request is authenticated and nil when
// anonymous; used behind OptionalAuth.
func ctxViewer(c echo.Context) *ports.Actor {
	actor, err := ctxActor(c)
	if err != nil {
		return nil
	}
	return &actor
}
