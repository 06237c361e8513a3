package ports

import (
	"context"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// Create inserts a new user. Implementations must map uniqueness
	// violations on username or email to domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
