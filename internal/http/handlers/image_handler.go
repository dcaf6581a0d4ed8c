// Rating image endpoints.
//
//   - POST   /rating-images                       (multipart: user_name, image)
//   - GET    /admin/rating-images                 (grouped by user)
//   - GET    /admin/rating-images/count?user_name=
//   - GET    /admin/rating-images/total
//   - GET    /admin/rating-images/{id}/content
//   - DELETE /admin/rating-images/{userName}/{id}
//   - DELETE /admin/rating-images
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/services"
)

// ImageGroupsResponse carries the gallery grouped by user.
type ImageGroupsResponse struct {
	Users []services.ImageGroup `json:"users"`
}

// UploadImage godoc
// @ID          uploadRatingImage
// @Summary     Upload a rating image
// @Tags        Images
// @Accept      multipart/form-data
// @Produce     json
// @Param       X-Device-ID  header    string  false  "Device identity"
// @Param       user_name    formData  string  true   "Uploader name"
// @Param       image        formData  file    true   "Image file"
// @Success     201  {object}  domain.RatingImage
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     413  {object}  handlers.ErrorResponse
// @Router      /rating-images [post]
func (h *Handlers) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image file required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable image")
		return
	}
	defer f.Close()

	var r io.Reader = f
	if h.MaxUploadBytes > 0 {
		// One extra byte lets the service tell "exactly at limit" from "over".
		r = io.LimitReader(f, h.MaxUploadBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable image")
		return
	}

	img, err := h.images.Upload(c.Request.Context(), deviceID(c), c.PostForm("user_name"), data)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, img)
}

// ListImages godoc
// @ID          adminListRatingImages
// @Summary     List rating images grouped by user
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.ImageGroupsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images [get]
func (h *Handlers) ListImages(c *gin.Context) {
	groups, err := h.images.ListGrouped(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ImageGroupsResponse{Users: nonNil(groups)})
}

// CountImages godoc
// @ID          adminCountRatingImages
// @Summary     Count one user's rating images
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       user_name      query   string  true  "Uploader name"
// @Success     200  {object}  handlers.CountResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images/count [get]
func (h *Handlers) CountImages(c *gin.Context) {
	n, err := h.images.CountForUser(c.Request.Context(), accessCode(c), c.Query("user_name"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// TotalImages godoc
// @ID          adminTotalRatingImages
// @Summary     Count every rating image
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.CountResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images/total [get]
func (h *Handlers) TotalImages(c *gin.Context) {
	n, err := h.images.TotalCount(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// ImageContent godoc
// @ID          adminRatingImageContent
// @Summary     Download a rating image
// @Tags        Admin
// @Produce     image/png
// @Produce     image/jpeg
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "Image ID"
// @Success     200  {file}    file
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images/{id}/content [get]
func (h *Handlers) ImageContent(c *gin.Context) {
	data, contentType, err := h.images.Content(c.Request.Context(), accessCode(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// RemoveImage godoc
// @ID          adminRemoveRatingImage
// @Summary     Delete one user's rating image
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       userName       path    string  true  "Uploader name"
// @Param       id             path    string  true  "Image ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images/{userName}/{id} [delete]
func (h *Handlers) RemoveImage(c *gin.Context) {
	if err := h.images.Remove(c.Request.Context(), accessCode(c), c.Param("userName"), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// RemoveAllImages godoc
// @ID          adminRemoveAllRatingImages
// @Summary     Delete every rating image
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.AffectedResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/rating-images [delete]
func (h *Handlers) RemoveAllImages(c *gin.Context) {
	n, err := h.images.RemoveAll(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}
