// Bulk generation and bulk key endpoints.
//
//   - POST   /lists/{id}/bulk   (X-Bulk-Key)
//   - PUT    /admin/bulk-key    (X-Access-Code)
//   - DELETE /admin/bulk-key    (X-Access-Code)
//   - GET    /admin/bulk-key    (X-Access-Code, ?masked=)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/utils"
)

// BulkRequest is the JSON payload for a bulk pull.
type BulkRequest struct {
	Count int `json:"count" binding:"required" example:"5"`
}

// SetBulkKeyRequest is the JSON payload for replacing the bulk key.
type SetBulkKeyRequest struct {
	Key string `json:"key" binding:"required" example:"s3cr3t-bulk"`
}

// BulkKeyResponse carries the bulk key; null when no key is set.
type BulkKeyResponse struct {
	Key *string `json:"key"`
}

// BulkGenerate godoc
// @ID          bulkGenerate
// @Summary     Claim several comments at once
// @Description Claims up to count unused comments. Locks and per-device history do not apply.
// @Description An exhausted list answers 200 with an empty array.
// @Tags        Bulk
// @Accept      json
// @Produce     json
// @Param       X-Bulk-Key  header  string                true  "Bulk generator key"
// @Param       id          path    string                true  "List ID"
// @Param       body        body    handlers.BulkRequest  true  "Count"
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /lists/{id}/bulk [post]
func (h *Handlers) BulkGenerate(c *gin.Context) {
	if err := h.bulk.CheckKey(c.Request.Context(), bulkKey(c)); err != nil {
		failService(c, err)
		return
	}
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "count required")
		return
	}
	items, err := h.bulk.Generate(c.Request.Context(), bulkKey(c), c.Param("id"), req.Count)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: nonNil(items)})
}

// SetBulkKey godoc
// @ID          adminSetBulkKey
// @Summary     Replace the bulk generator key
// @Tags        Admin
// @Accept      json
// @Param       X-Access-Code  header  string                      true  "Admin access code"
// @Param       body           body    handlers.SetBulkKeyRequest  true  "Key"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/bulk-key [put]
func (h *Handlers) SetBulkKey(c *gin.Context) {
	var req SetBulkKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "key required")
		return
	}
	if err := h.bulk.SetKey(c.Request.Context(), accessCode(c), req.Key); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ResetBulkKey godoc
// @ID          adminResetBulkKey
// @Summary     Remove the bulk generator key, disabling bulk pulls
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/bulk-key [delete]
func (h *Handlers) ResetBulkKey(c *gin.Context) {
	if err := h.bulk.ResetKey(c.Request.Context(), accessCode(c)); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// GetBulkKey godoc
// @ID          adminGetBulkKey
// @Summary     Read the bulk generator key
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true   "Admin access code"
// @Param       masked         query   bool    false  "Return a fixed mask instead of the key"  default(false)
// @Success     200  {object}  handlers.BulkKeyResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/bulk-key [get]
func (h *Handlers) GetBulkKey(c *gin.Context) {
	masked := utils.ParseBool(c.Query("masked"), false)
	key, err := h.bulk.GetKey(c.Request.Context(), accessCode(c), masked)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, BulkKeyResponse{Key: key})
}
