package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

type stubPhotoRepo struct {
	photos map[int64]*domain.Photo
	likes  map[string]bool
	nextID int64

	listPhotos []domain.Photo
	listTotal  int64
	listParams ports.ListPhotosParams
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{
		photos: make(map[int64]*domain.Photo),
		likes:  make(map[string]bool),
	}
}

func likeKey(photoID, userID int64) string {
	return fmt.Sprintf("%d:%d", photoID, userID)
}

func (r *stubPhotoRepo) Create(_ context.Context, photo *domain.Photo) (*domain.Photo, error) {
	r.nextID++
	created := *photo
	created.ID = r.nextID
	r.photos[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id int64) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhotoRepo) List(_ context.Context, params ports.ListPhotosParams) ([]domain.Photo, int64, error) {
	r.listParams = params
	return r.listPhotos, r.listTotal, nil
}

func (r *stubPhotoRepo) Update(_ context.Context, id int64, patch ports.PhotoPatch) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Caption != nil {
		p.Caption = *patch.Caption
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.photos, id)
	return nil
}

func (r *stubPhotoRepo) ToggleLike(_ context.Context, photoID, userID int64) (bool, int, error) {
	p, ok := r.photos[photoID]
	if !ok {
		return false, 0, domain.ErrPhotoNotFound
	}
	key := likeKey(photoID, userID)
	if r.likes[key] {
		delete(r.likes, key)
		p.LikesCount--
		return false, p.LikesCount, nil
	}
	r.likes[key] = true
	p.LikesCount++
	return true, p.LikesCount, nil
}

func (r *stubPhotoRepo) HasLiked(_ context.Context, photoID, userID int64) (bool, error) {
	return r.likes[likeKey(photoID, userID)], nil
}

type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
	addErr   error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[int64]*domain.Comment)}
}

func (r *stubCommentRepo) Add(_ context.Context, photoID, userID int64, text string) (*domain.Comment, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.nextID++
	c := &domain.Comment{ID: r.nextID, PhotoID: photoID, UserID: userID, Text: text}
	r.comments[c.ID] = c
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) ListByPhoto(_ context.Context, photoID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.PhotoID == photoID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type stubBlobStore struct {
	uploads   int
	uploadErr error
}

func (s *stubBlobStore) Upload(_ context.Context, _ []byte, originalName, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++
	return "https://blobs.test/" + originalName, nil
}

func (s *stubBlobStore) Delete(context.Context, string) error { return nil }

func (s *stubBlobStore) Properties(context.Context, string) (*ports.BlobProperties, error) {
	return &ports.BlobProperties{}, nil
}

type stubCleaner struct {
	scheduled []string
}

func (c *stubCleaner) Schedule(url string) { c.scheduled = append(c.scheduled, url) }

type photoFixture struct {
	svc      *PhotoService
	photos   *stubPhotoRepo
	comments *stubCommentRepo
	blobs    *stubBlobStore
	cleaner  *stubCleaner
}

func newPhotoFixture() *photoFixture {
	f := &photoFixture{
		photos:   newStubPhotoRepo(),
		comments: newStubCommentRepo(),
		blobs:    &stubBlobStore{},
		cleaner:  &stubCleaner{},
	}
	f.svc = NewPhotoService(f.photos, f.comments, f.blobs, f.cleaner, zerolog.Nop())
	return f
}

var (
	creator = ports.Actor{UserID: 1, Username: "ansel", Role: domain.RoleCreator}
	other   = ports.Actor{UserID: 2, Username: "viewer", Role: domain.RoleConsumer}
	admin   = ports.Actor{UserID: 3, Username: "root", Role: domain.RoleAdmin}
)

func (f *photoFixture) seedPhoto(t *testing.T, owner ports.Actor) *domain.Photo {
	t.Helper()
	photo, err := f.svc.Create(context.Background(), owner, ports.CreatePhotoInput{
		Title:       "sunset",
		FileName:    "sunset.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8},
	})
	if err != nil {
		t.Fatalf("seed photo: %v", err)
	}
	return photo
}

func TestPhotoService_Create_RequiresCreatorRole(t *testing.T) {
	f := newPhotoFixture()

	_, err := f.svc.Create(context.Background(), other, ports.CreatePhotoInput{
		Title: "nope", Data: []byte{1},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.blobs.uploads != 0 {
		t.Fatalf("no upload should happen for a forbidden create")
	}
}

func TestPhotoService_Create_Validation(t *testing.T) {
	f := newPhotoFixture()

	if _, err := f.svc.Create(context.Background(), creator, ports.CreatePhotoInput{Data: []byte{1}}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), creator, ports.CreatePhotoInput{Title: "t"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing file: expected ErrInvalidInput, got %v", err)
	}
}

func TestPhotoService_Create_Success(t *testing.T) {
	f := newPhotoFixture()

	photo := f.seedPhoto(t, creator)
	if photo.ID == 0 || photo.UserID != creator.UserID || photo.Title != "sunset" {
		t.Fatalf("unexpected photo: %+v", photo)
	}
	if photo.BlobURL == "" {
		t.Fatalf("blob url not set")
	}
	if f.blobs.uploads != 1 {
		t.Fatalf("expected exactly one upload, got %d", f.blobs.uploads)
	}
}

func TestPhotoService_Get_HasLikedDependsOnViewer(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	if _, err := f.svc.ToggleLike(context.Background(), other, photo.ID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	detail, err := f.svc.Get(context.Background(), photo.ID, &other)
	if err != nil {
		t.Fatalf("get with viewer: %v", err)
	}
	if !detail.HasLiked {
		t.Fatalf("viewer who liked should see hasLiked true")
	}

	anon, err := f.svc.Get(context.Background(), photo.ID, nil)
	if err != nil {
		t.Fatalf("get anonymous: %v", err)
	}
	if anon.HasLiked {
		t.Fatalf("anonymous viewer must always see hasLiked false")
	}
}

func TestPhotoService_Get_NotFound(t *testing.T) {
	f := newPhotoFixture()

	if _, err := f.svc.Get(context.Background(), 99, nil); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestPhotoService_List_DefaultsAndClamp(t *testing.T) {
	f := newPhotoFixture()
	f.photos.listTotal = 45

	result, err := f.svc.List(context.Background(), ports.ListPhotosInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("expected defaults page=1 limit=20, got page=%d limit=%d", result.Page, result.Limit)
	}
	if result.Pages != 3 {
		t.Fatalf("expected 3 pages for total=45 limit=20, got %d", result.Pages)
	}
	if f.photos.listParams.Offset != 0 {
		t.Fatalf("expected offset 0 for page 1, got %d", f.photos.listParams.Offset)
	}

	result, err = f.svc.List(context.Background(), ports.ListPhotosInput{Page: 3, Limit: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", result.Limit)
	}
	if f.photos.listParams.Offset != 200 {
		t.Fatalf("expected offset 200 for page 3 limit 100, got %d", f.photos.listParams.Offset)
	}
}

func TestPhotoService_Update_OwnerAndAdminOnly(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	title := "dawn"
	if _, err := f.svc.Update(context.Background(), other, photo.ID, ports.PhotoPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner: expected ErrForbidden, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), admin, photo.ID, ports.PhotoPatch{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "dawn" {
		t.Fatalf("title not applied: %+v", updated)
	}
}

func TestPhotoService_Update_EmptyPatch(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	if _, err := f.svc.Update(context.Background(), creator, photo.ID, ports.PhotoPatch{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}
}

func TestPhotoService_Delete_SchedulesOneCleanup(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	if err := f.svc.Delete(context.Background(), creator, photo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.photos.FindByID(context.Background(), photo.ID); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("photo row should be gone, got %v", err)
	}
	if len(f.cleaner.scheduled) != 1 || f.cleaner.scheduled[0] != photo.BlobURL {
		t.Fatalf("expected exactly one cleanup for %q, got %v", photo.BlobURL, f.cleaner.scheduled)
	}
}

func TestPhotoService_Delete_Forbidden(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	if err := f.svc.Delete(context.Background(), other, photo.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(f.cleaner.scheduled) != 0 {
		t.Fatalf("no cleanup should be scheduled on a forbidden delete")
	}
}

func TestPhotoService_ToggleLike_DoubleToggleRestoresState(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	first, err := f.svc.ToggleLike(context.Background(), other, photo.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Liked || first.LikesCount != 1 {
		t.Fatalf("first toggle: expected liked=true count=1, got %+v", first)
	}

	second, err := f.svc.ToggleLike(context.Background(), other, photo.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Liked || second.LikesCount != 0 {
		t.Fatalf("second toggle: expected liked=false count=0, got %+v", second)
	}
}

func TestPhotoService_ToggleLike_PhotoNotFound(t *testing.T) {
	f := newPhotoFixture()

	if _, err := f.svc.ToggleLike(context.Background(), other, 42); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestPhotoService_AddComment_Success(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	comment, err := f.svc.AddComment(context.Background(), other, photo.ID, "  nice shot  ")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.Text != "nice shot" {
		t.Fatalf("expected trimmed text, got %q", comment.Text)
	}
	if comment.Username != other.Username {
		t.Fatalf("expected commenter username %q, got %q", other.Username, comment.Username)
	}
}

func TestPhotoService_AddComment_TooLong(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	long := strings.Repeat("x", domain.MaxCommentLength+1)
	if _, err := f.svc.AddComment(context.Background(), other, photo.ID, long); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.comments.comments) != 0 {
		t.Fatalf("oversized comment must not be stored")
	}

	// Exactly at the limit is fine.
	exact := strings.Repeat("y", domain.MaxCommentLength)
	if _, err := f.svc.AddComment(context.Background(), other, photo.ID, exact); err != nil {
		t.Fatalf("comment at limit rejected: %v", err)
	}
}

func TestPhotoService_AddComment_PhotoNotFound(t *testing.T) {
	f := newPhotoFixture()

	if _, err := f.svc.AddComment(context.Background(), other, 7, "hello"); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestPhotoService_DeleteComment_OwnerAndAdminOnly(t *testing.T) {
	f := newPhotoFixture()
	photo := f.seedPhoto(t, creator)

	comment, err := f.svc.AddComment(context.Background(), other, photo.ID, "first")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := f.svc.DeleteComment(context.Background(), creator, comment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("photo owner is not comment owner: expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteComment(context.Background(), admin, comment.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := f.svc.DeleteComment(context.Background(), admin, comment.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound after delete, got %v", err)
	}
}
