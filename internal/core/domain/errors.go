package domain

import "errors"

// Sentinel errors shared across services and repositories. The API layer
// translates them to HTTP status codes in exactly one place.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
