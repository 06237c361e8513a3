package handler

import "github.com/photoshare/photoshare/internal/core/domain"

// --- Request types ---

type updatePhotoRequest struct {
	Title    *string `json:"title"`
	Caption  *string `json:"caption"`
	Location *string `json:"location"`
}

type addCommentRequest struct {
	CommentText string `json:"commentText"`
}

// --- Response types ---

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type listPhotosResponse struct {
	Photos     []domain.Photo     `json:"photos"`
	Pagination paginationResponse `json:"pagination"`
}

// photoDetailResponse flattens the photo fields alongside its comments and
// the viewer's like state, matching the single-photo wire shape.
type photoDetailResponse struct {
	domain.Photo
	Comments []domain.Comment `json:"comments"`
	HasLiked bool             `json:"hasLiked"`
}

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type messageResponse struct {
	Message string `json:"message"`
}
