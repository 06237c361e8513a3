package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubThrottle struct {
	allowed  bool
	failures int
	resets   int
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) { return t.allowed, nil }
func (t *stubThrottle) RecordFailure(context.Context, string) error {
	t.failures++
	return nil
}
func (t *stubThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}

func newTestAuthService(repo ports.AuthRepository, throttle ports.LoginThrottle) *AuthService {
	return NewAuthService(repo, throttle, "secret", time.Hour, zerolog.Nop())
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123456",
		Role:     domain.RoleCreator,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pw123456" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := parseClaims(t, token)
	if claims["user_id"] != "1" || claims["username"] != "alice" || claims["email"] != "a@x.com" || claims["role"] != "creator" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Email: "b@x.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleConsumer {
		t.Fatalf("expected default role consumer, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@x.com", Password: "pw"},
		{Username: "a", Email: "", Password: "pw"},
		{Username: "a", Email: "a@x.com", Password: ""},
		{Username: "a", Email: "a@x.com", Password: "pw", Role: domain.RoleAdmin},
		{Username: "a", Email: "a@x.com", Password: "pw", Role: "wizard"},
	}
	for i, input := range cases {
		if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	input := ports.RegisterInput{Username: "carol", Email: "c@x.com", Password: "pw123456"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "d@x.com", Password: "s3cret99", Role: domain.RoleCreator,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dave", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID || user.Username != "dave" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := parseClaims(t, token)
	if claims["user_id"] != "1" || claims["username"] != "dave" || claims["role"] != "creator" {
		t.Fatalf("login token does not round-trip registration: %+v", claims)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Email: "e@x.com", Password: "goodpass",
	})

	// Unknown user and wrong password both yield the same error, so a caller
	// cannot enumerate accounts.
	if _, _, err := svc.Login(context.Background(), "ghost", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "erin", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAuthRepo()
	throttle := &stubThrottle{allowed: false}
	svc := newTestAuthService(repo, throttle)

	if _, _, err := svc.Login(context.Background(), "frank", "pw"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleBookkeeping(t *testing.T) {
	repo := newStubAuthRepo()
	throttle := &stubThrottle{allowed: true}
	svc := newTestAuthService(repo, throttle)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "grace", Email: "g@x.com", Password: "goodpass",
	})

	_, _, _ = svc.Login(context.Background(), "grace", "badpass")
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, _, err := svc.Login(context.Background(), "grace", "goodpass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}
