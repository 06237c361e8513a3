package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photoshare/photoshare/internal/core/domain"
)

// CommentRepository persists comments. Row writes and the photo counter
// update always share one transaction so comments_count tracks the actual
// row count.
type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Add(ctx context.Context, photoID, userID int64, text string) (*domain.Comment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add comment: %w", err)
	}
	defer tx.Rollback(ctx)

	c := domain.Comment{PhotoID: photoID, UserID: userID, Text: text}
	err = tx.QueryRow(ctx,
		`INSERT INTO comments (photo_id, user_id, comment_text)
		 VALUES ($1, $2, $3)
		 RETURNING comment_id, created_at`,
		photoID, userID, text,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE photos SET comments_count = comments_count + 1 WHERE photo_id = $1`,
		photoID); err != nil {
		return nil, fmt.Errorf("increment comments count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit add comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT comment_id, photo_id, user_id, comment_text, created_at
		 FROM comments
		 WHERE comment_id = $1`,
		id,
	).Scan(&c.ID, &c.PhotoID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete comment: %w", err)
	}
	defer tx.Rollback(ctx)

	var photoID int64
	err = tx.QueryRow(ctx,
		`DELETE FROM comments WHERE comment_id = $1 RETURNING photo_id`,
		id,
	).Scan(&photoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE photos SET comments_count = comments_count - 1 WHERE photo_id = $1`,
		photoID); err != nil {
		return fmt.Errorf("decrement comments count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.comment_id, c.photo_id, c.user_id, c.comment_text, c.created_at, u.username
		 FROM comments c
		 INNER JOIN users u ON c.user_id = u.user_id
		 WHERE c.photo_id = $1
		 ORDER BY c.created_at DESC, c.comment_id DESC`,
		photoID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PhotoID, &c.UserID, &c.Text, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
