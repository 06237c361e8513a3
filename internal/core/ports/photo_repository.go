package ports

import (
	"context"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// PhotoPatch holds the optional fields of a partial photo update. Nil fields
// are left untouched. The repository translates the patch into a
// parameterized statement; user-controlled values never reach SQL text.
type PhotoPatch struct {
	Title    *string
	Caption  *string
	Location *string
}

// Empty reports whether the patch changes nothing.
func (p PhotoPatch) Empty() bool {
	return p.Title == nil && p.Caption == nil && p.Location == nil
}

// ListPhotosParams carries repository-level list filters. Search matches a
// substring of title, caption, or location. UserID of 0 means no owner filter.
type ListPhotosParams struct {
	Search string
	UserID int64
	Offset int
	Limit  int
}

// PhotoRepository persists photos and their like rows. ToggleLike runs as a
// single transaction so the denormalized counter cannot drift from the
// actual row count under concurrent toggles.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
	// FindByID returns the photo joined with its owner's username and role,
	// or domain.ErrPhotoNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context, params ListPhotosParams) ([]domain.Photo, int64, error)
	// Update applies a non-empty patch and stamps updated_at.
	Update(ctx context.Context, id int64, patch PhotoPatch) (*domain.Photo, error)
	// Delete removes the row; likes and comments cascade.
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, photoID, userID int64) (liked bool, likesCount int, err error)
	HasLiked(ctx context.Context, photoID, userID int64) (bool, error)
}

// CommentRepository persists comments. Add and Delete each run the row write
// and the photo counter update inside one transaction.
type CommentRepository interface {
	Add(ctx context.Context, photoID, userID int64, text string) (*domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	// ListByPhoto returns comments newest first, with commenter usernames.
	ListByPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error)
}
