package ports

import (
	"context"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
// Role defaults to consumer when empty; admin is not self-assignable.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService defines registration and login use cases. Both return a signed
// token embedding a snapshot of the user's identity and role.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure notes a failed attempt.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
