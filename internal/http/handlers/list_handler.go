// Public list endpoints.
//
//   - GET  /lists                  (ids, ETag support)
//   - GET  /lists/locked           (locked ids)
//   - GET  /lists/{id}/locked      (lock flag)
//   - GET  /lists/{id}/remaining   (unused count)
//   - GET  /lists/{id}/available   (unused comments)
//   - POST /lists/{id}/generate    (one comment per device, Idempotency-Key aware)
//   - GET  /history                (per-device draw history)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/http/middleware"
	"github.com/tbourn/go-comment-dispenser/internal/services"
)

//
// DTOs
//

// ListIDsResponse carries list identifiers.
type ListIDsResponse struct {
	Lists []string `json:"lists" example:"morning,evening"`
}

// LockedResponse reports a list's lock flag.
type LockedResponse struct {
	ListID string `json:"list_id" example:"morning"`
	Locked bool   `json:"locked"`
}

// CountResponse carries a single count.
type CountResponse struct {
	Count int64 `json:"count" example:"12"`
}

// CommentsResponse carries a set of comments.
type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// DrawResponse carries the drawn comment, or null when the list is exhausted.
type DrawResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// HistoryResponse reports, for every list, whether the device has drawn.
type HistoryResponse struct {
	History []services.HistoryEntry `json:"history"`
}

// HeaderReplayed is set on draw responses served from a stored result.
const HeaderReplayed = "Idempotent-Replayed"

// ListIDs godoc
// @ID          listLists
// @Summary     List comment lists
// @Description Returns every list id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Lists
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.ListIDsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /lists [get]
func (h *Handlers) ListIDs(c *gin.Context) {
	ctx := c.Request.Context()

	if count, maxTS, err := h.comments.ListsStats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		if notModified(c, fmt.Sprintf(`W/"lists:%d:%d"`, count, ts)) {
			return
		}
	}

	ids, err := h.comments.ListIDs(ctx)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListIDsResponse{Lists: nonNil(ids)})
}

// LockedListIDs godoc
// @ID          listLockedLists
// @Summary     List locked comment lists
// @Tags        Lists
// @Produce     json
// @Success     200  {object}  handlers.ListIDsResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /lists/locked [get]
func (h *Handlers) LockedListIDs(c *gin.Context) {
	ids, err := h.comments.LockedListIDs(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListIDsResponse{Lists: nonNil(ids)})
}

// IsLocked godoc
// @ID          getListLocked
// @Summary     Get a list's lock flag
// @Tags        Lists
// @Produce     json
// @Param       id   path  string  true  "List ID"  example(morning)
// @Success     200  {object}  handlers.LockedResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /lists/{id}/locked [get]
func (h *Handlers) IsLocked(c *gin.Context) {
	id := c.Param("id")
	locked, err := h.comments.IsLocked(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, LockedResponse{ListID: id, Locked: locked})
}

// Remaining godoc
// @ID          getListRemaining
// @Summary     Count unused comments
// @Tags        Lists
// @Produce     json
// @Param       id   path  string  true  "List ID"
// @Success     200  {object}  handlers.CountResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /lists/{id}/remaining [get]
func (h *Handlers) Remaining(c *gin.Context) {
	n, err := h.comments.RemainingCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// Available godoc
// @ID          getListAvailable
// @Summary     List unused comments
// @Tags        Lists
// @Produce     json
// @Param       id   path  string  true  "List ID"
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /lists/{id}/available [get]
func (h *Handlers) Available(c *gin.Context) {
	items, err := h.comments.AvailableComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: nonNil(items)})
}

// Generate godoc
// @ID          generateComment
// @Summary     Draw one comment
// @Description Hands the device one unused comment from the list. A device gets at most one
// @Description comment per list; retries carrying the same Idempotency-Key replay the first result.
// @Description An exhausted list answers 200 with a null comment.
// @Tags        Draws
// @Produce     json
// @Param       X-Device-ID      header  string  true   "Device identity"  example(device-42)
// @Param       Idempotency-Key  header  string  false  "Replay key"       example(7b7e2d1c-draw)
// @Param       id               path    string  true   "List ID"
// @Success     200  {object}  handlers.DrawResponse
// @Header      200  {string}  Idempotent-Replayed  "true when served from a stored result"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing device id"
// @Failure     404  {object}  handlers.ErrorResponse  "List not found"
// @Failure     409  {object}  handlers.ErrorResponse  "already_generated"
// @Failure     423  {object}  handlers.ErrorResponse  "list_locked"
// @Failure     429  {object}  handlers.ErrorResponse
// @Router      /lists/{id}/generate [post]
func (h *Handlers) Generate(c *gin.Context) {
	key, _ := middleware.GetIdempotencyKey(c)

	cm, replayed, err := h.draws.GenerateWithKey(c.Request.Context(), c.Param("id"), deviceID(c), key)
	if err != nil {
		failService(c, err)
		return
	}
	if replayed {
		c.Header(HeaderReplayed, "true")
	}
	ok(c, http.StatusOK, DrawResponse{Comment: cm})
}

// History godoc
// @ID          getHistory
// @Summary     Per-device draw history
// @Description Returns every list with a flag telling whether the device already drew from it.
// @Tags        Draws
// @Produce     json
// @Param       X-Device-ID  header  string  true  "Device identity"
// @Success     200  {object}  handlers.HistoryResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /history [get]
func (h *Handlers) History(c *gin.Context) {
	entries, err := h.draws.History(c.Request.Context(), deviceID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, HistoryResponse{History: nonNil(entries)})
}
