package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":  "7",
		"username": "ansel",
		"email":    "a@x.com",
		"role":     "creator",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func invokeMiddleware(mw echo.MiddlewareFunc, authHeader string) (echo.Context, bool, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	nextCalled := false
	err := mw(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)
	return c, nextCalled, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	c, nextCalled, err := invokeMiddleware(Auth(testSecret), "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatalf("next handler not called")
	}
	if got, _ := c.Get("user_id").(int64); got != 7 {
		t.Errorf("user_id = %v, want 7", c.Get("user_id"))
	}
	if got, _ := c.Get("username").(string); got != "ansel" {
		t.Errorf("username = %v, want ansel", c.Get("username"))
	}
	if got, _ := c.Get("role").(domain.Role); got != domain.RoleCreator {
		t.Errorf("role = %v, want creator", c.Get("role"))
	}
}

func TestAuth_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	badID := validClaims()
	badID["user_id"] = "not-a-number"

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", validClaims())},
		{"expired", "Bearer " + signToken(t, testSecret, expired)},
		{"bad user_id claim", "Bearer " + signToken(t, testSecret, badID)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, nextCalled, err := invokeMiddleware(Auth(testSecret), tc.header)
			if nextCalled {
				t.Fatalf("next handler should not run")
			}
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}

func TestOptionalAuth_AnonymousPassThrough(t *testing.T) {
	for _, header := range []string{"", "Bearer not.a.jwt"} {
		c, nextCalled, err := invokeMiddleware(OptionalAuth(testSecret), header)
		if err != nil {
			t.Fatalf("header %q: unexpected error: %v", header, err)
		}
		if !nextCalled {
			t.Fatalf("header %q: next handler not called", header)
		}
		if c.Get("user_id") != nil {
			t.Fatalf("header %q: no claims should be set", header)
		}
	}
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	c, nextCalled, err := invokeMiddleware(OptionalAuth(testSecret), "Bearer "+token)
	if err != nil || !nextCalled {
		t.Fatalf("expected pass-through, err=%v next=%v", err, nextCalled)
	}
	if got, _ := c.Get("user_id").(int64); got != 7 {
		t.Fatalf("user_id = %v, want 7", c.Get("user_id"))
	}
}
