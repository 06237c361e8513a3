package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

// PhotoRepository persists photos and like rows.
type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	created := *photo
	err := r.pool.QueryRow(ctx,
		`INSERT INTO photos (user_id, title, caption, location, blob_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING photo_id, likes_count, comments_count, created_at, updated_at`,
		photo.UserID, photo.Title, photo.Caption, photo.Location, photo.BlobURL,
	).Scan(&created.ID, &created.LikesCount, &created.CommentsCount, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return &created, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id int64) (*domain.Photo, error) {
	var p domain.Photo
	err := r.pool.QueryRow(ctx,
		`SELECT p.photo_id, p.user_id, p.title, p.caption, p.location,
		        p.blob_url, p.thumbnail_url, p.likes_count, p.comments_count,
		        p.created_at, p.updated_at, u.username, u.role
		 FROM photos p
		 INNER JOIN users u ON p.user_id = u.user_id
		 WHERE p.photo_id = $1`,
		id,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Caption, &p.Location,
		&p.BlobURL, &p.ThumbnailURL, &p.LikesCount, &p.CommentsCount,
		&p.CreatedAt, &p.UpdatedAt, &p.OwnerUsername, &p.OwnerRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return &p, nil
}

// List pages photos newest first. The WHERE clause is assembled from fixed
// fragments with numbered placeholders; caller data only ever travels in args.
func (r *PhotoRepository) List(ctx context.Context, params ports.ListPhotosParams) ([]domain.Photo, int64, error) {
	where := "1=1"
	args := []any{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.caption ILIKE $%d OR p.location ILIKE $%d)", n, n, n)
	}
	if params.UserID != 0 {
		args = append(args, params.UserID)
		where += fmt.Sprintf(" AND p.user_id = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM photos p WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count photos: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	listQuery := fmt.Sprintf(
		`SELECT p.photo_id, p.user_id, p.title, p.caption, p.location,
		        p.blob_url, p.thumbnail_url, p.likes_count, p.comments_count,
		        p.created_at, p.updated_at, u.username, u.role
		 FROM photos p
		 INNER JOIN users u ON p.user_id = u.user_id
		 WHERE %s
		 ORDER BY p.created_at DESC, p.photo_id DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Caption, &p.Location,
			&p.BlobURL, &p.ThumbnailURL, &p.LikesCount, &p.CommentsCount,
			&p.CreatedAt, &p.UpdatedAt, &p.OwnerUsername, &p.OwnerRole); err != nil {
			return nil, 0, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list photos: %w", err)
	}

	return photos, total, nil
}

// Update applies the patch fields that are set and always stamps updated_at.
// SET fragments are fixed strings; values bind through placeholders only.
func (r *PhotoRepository) Update(ctx context.Context, id int64, patch ports.PhotoPatch) (*domain.Photo, error) {
	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Caption != nil {
		args = append(args, *patch.Caption)
		sets = append(sets, fmt.Sprintf("caption = $%d", len(args)))
	}
	if patch.Location != nil {
		args = append(args, *patch.Location)
		sets = append(sets, fmt.Sprintf("location = $%d", len(args)))
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE photos SET %s WHERE photo_id = $%d
		 RETURNING photo_id, user_id, title, caption, location, blob_url,
		           thumbnail_url, likes_count, comments_count, created_at, updated_at`,
		strings.Join(sets, ", "), len(args))

	var p domain.Photo
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Caption, &p.Location, &p.BlobURL,
		&p.ThumbnailURL, &p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("update photo: %w", err)
	}
	return &p, nil
}

// Delete removes the photo row. Likes and comments go with it via
// ON DELETE CASCADE on their foreign keys.
func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE photo_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// ToggleLike flips the (photo, user) like row and adjusts the denormalized
// counter inside one transaction, so concurrent toggles serialize on the
// unique index instead of racing the counter.
func (r *PhotoRepository) ToggleLike(ctx context.Context, photoID, userID int64) (bool, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM likes WHERE photo_id = $1 AND user_id = $2`,
		photoID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("delete like: %w", err)
	}

	liked := tag.RowsAffected() == 0
	delta := -1
	if liked {
		if _, err := tx.Exec(ctx,
			`INSERT INTO likes (photo_id, user_id) VALUES ($1, $2)`,
			photoID, userID); err != nil {
			return false, 0, fmt.Errorf("insert like: %w", err)
		}
		delta = 1
	}

	var count int
	err = tx.QueryRow(ctx,
		`UPDATE photos SET likes_count = likes_count + $2
		 WHERE photo_id = $1
		 RETURNING likes_count`,
		photoID, delta,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, domain.ErrPhotoNotFound
		}
		return false, 0, fmt.Errorf("update likes count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("commit toggle: %w", err)
	}
	return liked, count, nil
}

func (r *PhotoRepository) HasLiked(ctx context.Context, photoID, userID int64) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE photo_id = $1 AND user_id = $2)`,
		photoID, userID,
	).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}
