// Messaging endpoints.
//
//   - POST /messages          (user message, X-Device-ID optional)
//   - GET  /messages          (device thread plus shared admin replies, ETag support)
//   - GET  /admin/messages    (all messages plus unread count)
//   - POST /admin/messages    (admin reply to a thread)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/utils"
)

// SendMessageRequest is the JSON payload for a user message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required" example:"The morning list ran out early."`
}

// ReplyRequest is the JSON payload for an admin reply. An empty thread
// posts into the shared thread every device sees.
type ReplyRequest struct {
	Content string `json:"content" binding:"required" example:"Refilled, thanks!"`
	Thread  string `json:"thread" example:"device-42"`
}

// MessagesResponse carries a message list.
type MessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

// AdminMessagesResponse carries every message and the unread count.
type AdminMessagesResponse struct {
	Messages []domain.Message `json:"messages"`
	Unread   int64            `json:"unread" example:"2"`
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message to the admins
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       X-Device-ID  header  string                       false  "Device identity (thread)"
// @Param       body         body    handlers.SendMessageRequest  true   "Message"
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}
	m, err := h.chat.Send(c.Request.Context(), deviceID(c), req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     Read the device's thread
// @Description Returns the device's messages plus admin replies in the shared thread, oldest first.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Messages
// @Produce     json
// @Param       X-Device-ID    header  string  false  "Device identity (thread)"
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.MessagesResponse
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	thread := deviceID(c)

	if count, maxTS, err := h.chat.ThreadStats(ctx, thread); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		if notModified(c, fmt.Sprintf(`W/"messages:%s:%d:%d"`, thread, count, ts)) {
			return
		}
	}

	items, err := h.chat.Messages(ctx, thread)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, MessagesResponse{Messages: nonNil(items)})
}

// AdminMessages godoc
// @ID          adminListMessages
// @Summary     Read every message
// @Tags        Admin
// @Produce     json
// @Param       X-Access-Code  header  string  true   "Admin access code"
// @Param       limit          query   int     false  "Only the most recent N messages (0 = all)"
// @Success     200  {object}  handlers.AdminMessagesResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/messages [get]
func (h *Handlers) AdminMessages(c *gin.Context) {
	ctx := c.Request.Context()
	code := accessCode(c)

	items, err := h.chat.AllMessages(ctx, code)
	if err != nil {
		failService(c, err)
		return
	}
	unread, err := h.chat.UnreadCount(ctx, code)
	if err != nil {
		failService(c, err)
		return
	}
	if n := utils.AtoiDefault(c.Query("limit"), 0); n > 0 && n < len(items) {
		items = items[len(items)-n:]
	}
	ok(c, http.StatusOK, AdminMessagesResponse{Messages: nonNil(items), Unread: unread})
}

// ReplyMessage godoc
// @ID          adminReplyMessage
// @Summary     Reply to a thread
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       X-Access-Code  header  string                 true  "Admin access code"
// @Param       body           body    handlers.ReplyRequest  true  "Reply"
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/messages [post]
func (h *Handlers) ReplyMessage(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}
	m, err := h.chat.Reply(c.Request.Context(), accessCode(c), req.Thread, req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}
