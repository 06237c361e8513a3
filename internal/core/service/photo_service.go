package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare/internal/api/metrics"
	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// PhotoService implements all photo, like, and comment use cases.
type PhotoService struct {
	photos   ports.PhotoRepository
	comments ports.CommentRepository
	blobs    ports.BlobStore
	cleaner  ports.BlobCleaner
	log      zerolog.Logger
}

func NewPhotoService(
	photos ports.PhotoRepository,
	comments ports.CommentRepository,
	blobs ports.BlobStore,
	cleaner ports.BlobCleaner,
	log zerolog.Logger,
) *PhotoService {
	return &PhotoService{photos: photos, comments: comments, blobs: blobs, cleaner: cleaner, log: log}
}

// Create uploads the image to the blob store and inserts the photo row.
// The upload happens first: if the insert then fails the blob is orphaned,
// a deliberate trade-off inherited from the delete policy (row state is
// authoritative, blob state advisory).
func (s *PhotoService) Create(ctx context.Context, actor ports.Actor, input ports.CreatePhotoInput) (*domain.Photo, error) {
	if !actor.Role.AtLeast(domain.RoleCreator) {
		return nil, fmt.Errorf("%w: only creators can upload photos", domain.ErrForbidden)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: title and photo file are required", domain.ErrInvalidInput)
	}

	blobURL, err := s.blobs.Upload(ctx, input.Data, input.FileName, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	created, err := s.photos.Create(ctx, &domain.Photo{
		UserID:   actor.UserID,
		Title:    title,
		Caption:  input.Caption,
		Location: input.Location,
		BlobURL:  blobURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}

	metrics.PhotosCreatedTotal.Inc()
	s.log.Info().Int64("photo_id", created.ID).Int64("user_id", actor.UserID).Msg("photo created")

	return created, nil
}

// Get returns the detail view. HasLiked is computed only when a viewer is
// authenticated; anonymous requests always see false.
func (s *PhotoService) Get(ctx context.Context, id int64, viewer *ports.Actor) (*ports.PhotoDetail, error) {
	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPhoto(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	hasLiked := false
	if viewer != nil {
		hasLiked, err = s.photos.HasLiked(ctx, id, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("check like: %w", err)
		}
	}

	return &ports.PhotoDetail{Photo: *photo, Comments: comments, HasLiked: hasLiked}, nil
}

func (s *PhotoService) List(ctx context.Context, input ports.ListPhotosInput) (*ports.ListPhotosResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	photos, total, err := s.photos.List(ctx, ports.ListPhotosParams{
		Search: strings.TrimSpace(input.Search),
		UserID: input.UserID,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListPhotosResult{
		Photos: photos,
		Page:   page,
		Limit:  limit,
		Total:  total,
		Pages:  pages,
	}, nil
}

func (s *PhotoService) Update(ctx context.Context, actor ports.Actor, id int64, patch ports.PhotoPatch) (*domain.Photo, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, photo.UserID) {
		return nil, fmt.Errorf("%w: you can only update your own photos", domain.ErrForbidden)
	}

	updated, err := s.photos.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	return updated, nil
}

// Delete removes the photo row (likes and comments cascade) and schedules a
// single best-effort blob deletion. The row deletion is authoritative; a
// failed blob cleanup is logged by the cleaner but never fails the request.
func (s *PhotoService) Delete(ctx context.Context, actor ports.Actor, id int64) error {
	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, photo.UserID) {
		return fmt.Errorf("%w: you can only delete your own photos", domain.ErrForbidden)
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	s.cleaner.Schedule(photo.BlobURL)

	metrics.PhotosDeletedTotal.Inc()
	s.log.Info().Int64("photo_id", id).Int64("user_id", actor.UserID).Msg("photo deleted")

	return nil
}

func (s *PhotoService) ToggleLike(ctx context.Context, actor ports.Actor, photoID int64) (*ports.LikeResult, error) {
	if _, err := s.photos.FindByID(ctx, photoID); err != nil {
		return nil, err
	}

	liked, count, err := s.photos.ToggleLike(ctx, photoID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	result := "unliked"
	if liked {
		result = "liked"
	}
	metrics.LikesToggledTotal.WithLabelValues(result).Inc()

	return &ports.LikeResult{Liked: liked, LikesCount: count}, nil
}

func (s *PhotoService) AddComment(ctx context.Context, actor ports.Actor, photoID int64, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be %d characters or less", domain.ErrInvalidInput, domain.MaxCommentLength)
	}

	if _, err := s.photos.FindByID(ctx, photoID); err != nil {
		return nil, err
	}

	comment, err := s.comments.Add(ctx, photoID, actor.UserID, text)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	comment.Username = actor.Username

	metrics.CommentsTotal.WithLabelValues("added").Inc()

	return comment, nil
}

func (s *PhotoService) DeleteComment(ctx context.Context, actor ports.Actor, commentID int64) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !canModify(actor, comment.UserID) {
		return fmt.Errorf("%w: you can only delete your own comments", domain.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	metrics.CommentsTotal.WithLabelValues("deleted").Inc()

	return nil
}

// canModify grants the resource owner and admins.
func canModify(actor ports.Actor, ownerID int64) bool {
	return actor.UserID == ownerID || actor.Role == domain.RoleAdmin
}
