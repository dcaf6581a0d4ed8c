// Admin list and comment endpoints. Every route requires X-Access-Code.
//
//   - POST   /admin/lists                          (create)
//   - DELETE /admin/lists                          (clear all)
//   - DELETE /admin/lists/{id}                     (delete)
//   - POST   /admin/lists/{id}/comments            (add)
//   - DELETE /admin/lists/{id}/comments/{commentId}
//   - POST   /admin/lists/{id}/reset|lock|unlock
//   - GET    /admin/lists/{id}/comments|total
//   - GET    /admin/lists/totals
//   - GET    /admin/lists/locked/total
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// CreateListRequest is the JSON payload for creating a list.
type CreateListRequest struct {
	ListID string `json:"list_id" binding:"required" example:"morning"`
}

// AddCommentRequest is the JSON payload for adding a comment.
type AddCommentRequest struct {
	ID      string `json:"id"      binding:"required" example:"c-001"`
	Content string `json:"content" binding:"required" example:"Great service, will come back!"`
}

// AffectedResponse reports how many rows an admin operation touched.
type AffectedResponse struct {
	Affected int64 `json:"affected" example:"3"`
}

// ListTotalsResponse carries per-list totals.
type ListTotalsResponse struct {
	Lists []repo.ListTotal `json:"lists"`
}

// CreateList godoc
// @ID          adminCreateList
// @Summary     Create a list
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       X-Access-Code  header  string                      true  "Admin access code"
// @Param       body           body    handlers.CreateListRequest  true  "List"
// @Success     201  {object}  domain.CommentList
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /admin/lists [post]
func (h *Handlers) CreateList(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "list_id required")
		return
	}
	l, err := h.comments.CreateList(c.Request.Context(), accessCode(c), req.ListID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, l)
}

// DeleteList godoc
// @ID          adminDeleteList
// @Summary     Delete a list with its comments and draw records
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id} [delete]
func (h *Handlers) DeleteList(c *gin.Context) {
	if err := h.comments.DeleteList(c.Request.Context(), accessCode(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ClearAll godoc
// @ID          adminClearAll
// @Summary     Delete every list
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.AffectedResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/lists [delete]
func (h *Handlers) ClearAll(c *gin.Context) {
	n, err := h.comments.ClearAll(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

// AddComment godoc
// @ID          adminAddComment
// @Summary     Add a comment to a list
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       X-Access-Code  header  string                      true  "Admin access code"
// @Param       id             path    string                      true  "List ID"
// @Param       body           body    handlers.AddCommentRequest  true  "Comment"
// @Success     201  {object}  domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Failure     423  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/comments [post]
func (h *Handlers) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id and content required")
		return
	}
	cm, err := h.comments.AddComment(c.Request.Context(), accessCode(c), c.Param("id"), req.ID, req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, cm)
}

// RemoveComment godoc
// @ID          adminRemoveComment
// @Summary     Remove a comment from a list
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Param       commentId      path    string  true  "Comment ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/comments/{commentId} [delete]
func (h *Handlers) RemoveComment(c *gin.Context) {
	if err := h.comments.RemoveComment(c.Request.Context(), accessCode(c), c.Param("id"), c.Param("commentId")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ResetList godoc
// @ID          adminResetList
// @Summary     Mark every comment of a list unused
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     200  {object}  handlers.AffectedResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/reset [post]
func (h *Handlers) ResetList(c *gin.Context) {
	n, err := h.comments.ResetList(c.Request.Context(), accessCode(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

// LockList godoc
// @ID          adminLockList
// @Summary     Lock a list against single draws
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/lock [post]
func (h *Handlers) LockList(c *gin.Context) {
	if err := h.comments.LockList(c.Request.Context(), accessCode(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// UnlockList godoc
// @ID          adminUnlockList
// @Summary     Unlock a list
// @Tags        Admin
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/unlock [post]
func (h *Handlers) UnlockList(c *gin.Context) {
	if err := h.comments.UnlockList(c.Request.Context(), accessCode(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// CommentList godoc
// @ID          adminListComments
// @Summary     List every comment of a list, used or not
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/comments [get]
func (h *Handlers) CommentList(c *gin.Context) {
	items, err := h.comments.CommentList(c.Request.Context(), accessCode(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: nonNil(items)})
}

// CommentListTotal godoc
// @ID          adminListTotal
// @Summary     Count every comment of a list
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Param       id             path    string  true  "List ID"
// @Success     200  {object}  handlers.CountResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/lists/{id}/total [get]
func (h *Handlers) CommentListTotal(c *gin.Context) {
	n, err := h.comments.CommentListTotal(c.Request.Context(), accessCode(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// AllListTotals godoc
// @ID          adminAllListTotals
// @Summary     Totals for every list
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.ListTotalsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/lists/totals [get]
func (h *Handlers) AllListTotals(c *gin.Context) {
	totals, err := h.comments.AllListTotals(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListTotalsResponse{Lists: nonNil(totals)})
}

// LockedListsTotal godoc
// @ID          adminLockedListsTotal
// @Summary     Count locked lists
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true  "Admin access code"
// @Success     200  {object}  handlers.CountResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/lists/locked/total [get]
func (h *Handlers) LockedListsTotal(c *gin.Context) {
	n, err := h.comments.LockedListsTotal(c.Request.Context(), accessCode(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}
