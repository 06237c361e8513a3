package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare/internal/core/domain"
	"github.com/photoshare/photoshare/internal/core/ports"
)

// PhotoHandler handles HTTP requests for photo and like operations.
type PhotoHandler struct {
	service ports.PhotoService
}

func NewPhotoHandler(service ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// Create handles POST /api/photos (multipart form).
//
// @Summary      Upload a new photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title     formData  string  true   "Photo title"
// @Param        caption   formData  string  false  "Caption"
// @Param        location  formData  string  false  "Location"
// @Param        photo     formData  file    true   "Image file"
// @Success      201  {object}  domain.Photo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/photos [post]
func (h *PhotoHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input := ports.CreatePhotoInput{
		Title:    c.FormValue("title"),
		Caption:  c.FormValue("caption"),
		Location: c.FormValue("location"),
	}

	fileHeader, err := c.FormFile("photo")
	if err == nil {
		src, openErr := fileHeader.Open()
		if openErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read photo file"})
		}
		defer src.Close()

		data, readErr := io.ReadAll(src)
		if readErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read photo file"})
		}
		input.FileName = fileHeader.Filename
		input.ContentType = fileHeader.Header.Get("Content-Type")
		input.Data = data
	}

	photo, err := h.service.Create(c.Request().Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, photo)
}

// Get handles GET /api/photos/:id. hasLiked reflects the current viewer and
// is always false for anonymous requests.
//
// @Summary      Get a photo with comments
// @Tags         photos
// @Produce      json
// @Param        id  path  int  true  "Photo ID"
// @Success      200  {object}  photoDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{id} [get]
func (h *PhotoHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), id, ctxViewer(c))
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrPhotoNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, photoDetailResponse{
		Photo:    detail.Photo,
		Comments: detail.Comments,
		HasLiked: detail.HasLiked,
	})
}

// List handles GET /api/photos?page&limit&search&userId.
//
// @Summary      List photos
// @Tags         photos
// @Produce      json
// @Param        page    query  int     false  "Page (default 1)"
// @Param        limit   query  int     false  "Page size (default 20, max 100)"
// @Param        search  query  string  false  "Substring match on title/caption/location"
// @Param        userId  query  int     false  "Filter by owner"
// @Success      200  {object}  listPhotosResponse
// @Router       /api/photos [get]
func (h *PhotoHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	userID, _ := strconv.ParseInt(c.QueryParam("userId"), 10, 64)

	result, err := h.service.List(c.Request().Context(), ports.ListPhotosInput{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPhotosResponse{
		Photos: result.Photos,
		Pagination: paginationResponse{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
			Pages: result.Pages,
		},
	})
}

// Update handles PUT /api/photos/:id with a partial patch.
//
// @Summary      Update photo fields
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Photo ID"
// @Param        body  body  updatePhotoRequest  true  "Fields to update"
// @Success      200  {object}  domain.Photo
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{id} [put]
func (h *PhotoHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	photo, err := h.service.Update(c.Request().Context(), actor, id, ports.PhotoPatch{
		Title:    req.Title,
		Caption:  req.Caption,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrPhotoNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrPhotoNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, photo)
}

// Delete handles DELETE /api/photos/:id. The row deletion cascades to likes
// and comments; blob cleanup is scheduled best-effort.
//
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Photo ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrPhotoNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrPhotoNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "photo deleted successfully"})
}

// ToggleLike handles POST /api/photos/:id/like: an idempotent flip of the
// (photo, user) like.
//
// @Summary      Toggle a like
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Photo ID"
// @Success      200  {object}  likeResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/photos/{id}/like [post]
func (h *PhotoHandler) ToggleLike(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ToggleLike(c.Request().Context(), actor, id)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrPhotoNotFound.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, likeResponse{Liked: result.Liked, LikesCount: result.LikesCount})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
