// Package handlers exposes the REST endpoints of the comment dispenser.
//
// Handlers are transport-thin: they read headers and bodies, call the
// application services, and translate results into HTTP responses. All
// credential checks happen inside the services so that a wrong code never
// touches state, whatever the transport.
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
	"github.com/tbourn/go-comment-dispenser/internal/services"
)

// Request headers understood by the API.
const (
	HeaderAccessCode = "X-Access-Code"
	HeaderBulkKey    = "X-Bulk-Key"
	HeaderDeviceID   = "X-Device-ID"
)

//
// Service contracts (context-aware)
//

// CommentService covers list and comment management plus public list reads.
type CommentService interface {
	CreateList(ctx context.Context, code, listID string) (*domain.CommentList, error)
	DeleteList(ctx context.Context, code, listID string) error
	ClearAll(ctx context.Context, code string) (int64, error)
	AddComment(ctx context.Context, code, listID, commentID, content string) (*domain.Comment, error)
	RemoveComment(ctx context.Context, code, listID, commentID string) error
	ResetList(ctx context.Context, code, listID string) (int64, error)
	LockList(ctx context.Context, code, listID string) error
	UnlockList(ctx context.Context, code, listID string) error

	ListsStats(ctx context.Context) (int64, *time.Time, error)
	ListIDs(ctx context.Context) ([]string, error)
	LockedListIDs(ctx context.Context) ([]string, error)
	IsLocked(ctx context.Context, listID string) (bool, error)
	RemainingCount(ctx context.Context, listID string) (int64, error)
	AvailableComments(ctx context.Context, listID string) ([]domain.Comment, error)

	CommentList(ctx context.Context, code, listID string) ([]domain.Comment, error)
	CommentListTotal(ctx context.Context, code, listID string) (int64, error)
	AllListTotals(ctx context.Context, code string) ([]repo.ListTotal, error)
	LockedListsTotal(ctx context.Context, code string) (int64, error)
}

// DrawService hands out one comment per device per list.
type DrawService interface {
	// GenerateWithKey draws for deviceID; a non-empty key makes retries replay
	// the first result. An exhausted list yields a nil comment.
	GenerateWithKey(ctx context.Context, listID, deviceID, key string) (*domain.Comment, bool, error)
	History(ctx context.Context, deviceID string) ([]services.HistoryEntry, error)
}

// BulkService serves key-gated multi-comment pulls and key management.
type BulkService interface {
	CheckKey(ctx context.Context, bulkKey string) error
	Generate(ctx context.Context, bulkKey, listID string, count int) ([]domain.Comment, error)
	SetKey(ctx context.Context, code, key string) error
	ResetKey(ctx context.Context, code string) error
	GetKey(ctx context.Context, code string, masked bool) (*string, error)
}

// ChatService carries the user/admin message channel.
type ChatService interface {
	Send(ctx context.Context, deviceID, content string) (*domain.Message, error)
	Reply(ctx context.Context, code, thread, content string) (*domain.Message, error)
	Messages(ctx context.Context, deviceID string) ([]domain.Message, error)
	ThreadStats(ctx context.Context, thread string) (int64, *time.Time, error)
	AllMessages(ctx context.Context, code string) ([]domain.Message, error)
	UnreadCount(ctx context.Context, code string) (int64, error)
}

// ImageService manages the rating image gallery.
type ImageService interface {
	Upload(ctx context.Context, deviceID, userName string, data []byte) (*domain.RatingImage, error)
	ListGrouped(ctx context.Context, code string) ([]services.ImageGroup, error)
	CountForUser(ctx context.Context, code, userName string) (int64, error)
	TotalCount(ctx context.Context, code string) (int64, error)
	Remove(ctx context.Context, code, userName, id string) error
	RemoveAll(ctx context.Context, code string) (int64, error)
	Content(ctx context.Context, code, id string) ([]byte, string, error)
}

//
// Handler wiring
//

// Handlers groups all HTTP endpoints. It depends on abstract service
// interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	comments CommentService
	draws    DrawService
	bulk     BulkService
	chat     ChatService
	images   ImageService

	// MaxUploadBytes bounds how much of an uploaded image is read. Zero reads
	// the whole part; the request body limit still applies.
	MaxUploadBytes int64
}

// New constructs a Handlers instance bound to the given services.
func New(comments CommentService, draws DrawService, bulk BulkService, chat ChatService, images ImageService) *Handlers {
	return &Handlers{comments: comments, draws: draws, bulk: bulk, chat: chat, images: images}
}

// deviceID returns the caller's device identity. Upstream middleware stores
// it in the context; the header is read directly when it did not run.
func deviceID(c *gin.Context) string {
	if v, ok := c.Get("deviceID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return strings.TrimSpace(c.GetHeader(HeaderDeviceID))
}

func accessCode(c *gin.Context) string { return c.GetHeader(HeaderAccessCode) }

func bulkKey(c *gin.Context) string { return c.GetHeader(HeaderBulkKey) }

// nonNil keeps empty collections rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
