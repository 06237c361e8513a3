package ports

import (
	"context"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// Actor is the authenticated identity attached to a request, decoded from
// token claims. It is a snapshot taken at login time, not a live database
// read: role or identity changes take effect only after re-authentication.
type Actor struct {
	UserID   int64
	Username string
	Email    string
	Role     domain.Role
}

// CreatePhotoInput carries the multipart fields of a photo upload.
type CreatePhotoInput struct {
	Title       string
	Caption     string
	Location    string
	FileName    string
	ContentType string
	Data        []byte
}

// PhotoDetail is the full single-photo view: the photo joined with its owner,
// its comments newest first, and whether the current viewer has liked it.
// HasLiked is always false for anonymous viewers.
type PhotoDetail struct {
	Photo    domain.Photo
	Comments []domain.Comment
	HasLiked bool
}

// ListPhotosInput carries the query parameters of the list endpoint.
type ListPhotosInput struct {
	Page   int
	Limit  int
	Search string
	UserID int64
}

// ListPhotosResult is a page of photos plus pagination metadata.
type ListPhotosResult struct {
	Photos []domain.Photo
	Page   int
	Limit  int
	Total  int64
	Pages  int
}

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// PhotoService defines all photo, like, and comment use cases.
type PhotoService interface {
	Create(ctx context.Context, actor Actor, input CreatePhotoInput) (*domain.Photo, error)
	// Get returns the detail view; viewer is nil for anonymous requests.
	Get(ctx context.Context, id int64, viewer *Actor) (*PhotoDetail, error)
	List(ctx context.Context, input ListPhotosInput) (*ListPhotosResult, error)
	Update(ctx context.Context, actor Actor, id int64, patch PhotoPatch) (*domain.Photo, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	ToggleLike(ctx context.Context, actor Actor, photoID int64) (*LikeResult, error)
	AddComment(ctx context.Context, actor Actor, photoID int64, text string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor Actor, commentID int64) error
}
