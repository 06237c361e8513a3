package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// Auth validates the bearer JWT and injects the claim snapshot into context.
// Claims are checked for signature and expiry only; they are never
// re-validated against the database, so role changes apply at next login.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			if !setClaims(c, token, jwtSecret) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid bearer token is present and
// otherwise lets the request through anonymously. A missing or invalid token
// is treated the same: no claims in context.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				setClaims(c, token, jwtSecret)
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// setClaims parses and verifies the token, failing closed: any verification
// error leaves the context without claims.
func setClaims(c echo.Context, token, jwtSecret string) bool {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return false
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return false
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	c.Set("user_id", userID)
	c.Set("username", username)
	c.Set("email", email)
	c.Set("role", domain.Role(role))

	return true
}
