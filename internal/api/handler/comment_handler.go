package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.PhotoService
}

func NewCommentHandler(service ports.PhotoService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add handles POST /api/photos/:id/comment.
//
// @Summary      Comment on a photo
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "Photo ID"
// @Param        body  body  addCommentRequest  true  "Comment text (max 500 chars)"
// @Success      201  {object}  domain.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{id}/comment [post]
func (h *CommentHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	photoID, err := pathID(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	comment, err := h.service.AddComment(c.Request().Context(), actor, photoID, req.CommentText)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrPhotoNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrPhotoNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// Delete handles DELETE /api/comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Comment ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrCommentNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrCommentNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted successfully"})
}
