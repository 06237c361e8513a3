package domain

import "time"

// MaxCommentLength bounds the accepted comment text after trimming.
const MaxCommentLength = 500

// Photo is the core aggregate: an uploaded image plus its denormalized
// like/comment counters. OwnerUsername and OwnerRole are populated on read
// paths that join the owning user.
type Photo struct {
	ID            int64     `json:"photoId"`
	UserID        int64     `json:"userId"`
	Title         string    `json:"title"`
	Caption       string    `json:"caption"`
	Location      string    `json:"location"`
	BlobURL       string    `json:"blobUrl"`
	ThumbnailURL  string    `json:"thumbnailUrl,omitempty"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	OwnerUsername string `json:"username,omitempty"`
	OwnerRole     Role   `json:"role,omitempty"`
}

// Comment is a single comment on a photo. Username is populated on read views.
type Comment struct {
	ID        int64     `json:"commentId"`
	PhotoID   int64     `json:"photoId"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"commentText"`
	CreatedAt time.Time `json:"createdAt"`

	Username string `json:"username,omitempty"`
}

// Like records that a user liked a photo. At most one row exists per
// (photo, user) pair; the pair is toggled, never duplicated.
type Like struct {
	ID        int64     `json:"likeId"`
	PhotoID   int64     `json:"photoId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
