// Package services – ChatService
//
// ChatService is the two-party messaging channel between end users and the
// admin. It is an append-only log: users post into their device thread,
// the admin replies either into a device thread or into the shared thread
// ("") that every device sees. There is no mark-read operation; IsRead
// stays false and the admin view derives its unread count from user-side
// messages.
//
// Messaging is independent of comment allocation and takes no pool locks.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// MessageRepo defines the repository contract required by ChatService.
type MessageRepo interface {
	// CreateMessage appends a message to a thread.
	CreateMessage(ctx context.Context, db *gorm.DB, thread, side, content string) (*domain.Message, error)

	// ListThreadMessages returns a thread plus shared-thread admin replies, ascending.
	ListThreadMessages(ctx context.Context, db *gorm.DB, thread string) ([]domain.Message, error)

	// ListAllMessages returns every message, ascending.
	ListAllMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error)

	// CountUnread counts user-side messages not marked read.
	CountUnread(ctx context.Context, db *gorm.DB) (int64, error)
}

// ChatService implements the messaging channel.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the message repository used by this service.
	Repo MessageRepo

	// AccessCode is the admin secret required for replies and the admin view.
	AccessCode string
	// MaxRunes caps message content by rune length.
	MaxRunes int
}

// NewChatService constructs a ChatService with the default content cap.
func NewChatService(db *gorm.DB, r MessageRepo, accessCode string) *ChatService {
	return &ChatService{
		DB:         db,
		Repo:       r,
		AccessCode: accessCode,
		MaxRunes:   2000,
	}
}

// Send appends a user message to the device's thread. A blank device id
// posts into the shared thread.
func (s *ChatService) Send(ctx context.Context, deviceID, content string) (*domain.Message, error) {
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Send",
		trace.WithAttributes(attribute.String("device.id", deviceID)),
	)
	defer span.End()

	thread, err := cleanOptionalID(deviceID)
	if err != nil {
		return nil, err
	}
	content, err = cleanContent(content, s.MaxRunes)
	if err != nil {
		return nil, err
	}
	return s.Repo.CreateMessage(ctx, s.DB, thread, domain.SideUser, content)
}

// Reply appends an admin message to thread ("" for the shared thread).
func (s *ChatService) Reply(ctx context.Context, code, thread, content string) (*domain.Message, error) {
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Reply",
		trace.WithAttributes(attribute.String("thread", thread)),
	)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	thread, err := cleanOptionalID(thread)
	if err != nil {
		return nil, err
	}
	content, err = cleanContent(content, s.MaxRunes)
	if err != nil {
		return nil, err
	}
	return s.Repo.CreateMessage(ctx, s.DB, thread, domain.SideAdmin, content)
}

// Messages returns the caller's thread plus shared-thread admin replies.
func (s *ChatService) Messages(ctx context.Context, deviceID string) ([]domain.Message, error) {
	thread, err := cleanOptionalID(deviceID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListThreadMessages(ctx, s.DB, thread)
}

// ThreadStats returns the message count and newest timestamp visible to a
// thread, the inputs of the thread ETag.
func (s *ChatService) ThreadStats(ctx context.Context, thread string) (int64, *time.Time, error) {
	return repo.MessagesStats(ctx, s.DB, thread)
}

// AllMessages returns every message for the admin view.
func (s *ChatService) AllMessages(ctx context.Context, code string) ([]domain.Message, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	return s.Repo.ListAllMessages(ctx, s.DB)
}

// UnreadCount returns the number of user messages not marked read.
func (s *ChatService) UnreadCount(ctx context.Context, code string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	return s.Repo.CountUnread(ctx, s.DB)
}
