// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// CreateMessage inserts a new message row.
func CreateMessage(ctx context.Context, db *gorm.DB, thread, side, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		Thread:    thread,
		Side:      side,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return m, db.WithContext(ctx).Create(m).Error
}

// ListThreadMessages returns a device's thread plus admin replies posted to
// the shared thread, ordered deterministically (CreatedAt ASC, ID ASC).
func ListThreadMessages(ctx context.Context, db *gorm.DB, thread string) ([]domain.Message, error) {
	out := []domain.Message{}
	err := db.WithContext(ctx).
		Where("thread = ? OR (thread = '' AND side = ?)", thread, domain.SideAdmin).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListAllMessages returns every message ordered (CreatedAt ASC, ID ASC).
func ListAllMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error) {
	out := []domain.Message{}
	err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// CountUnread counts user-side messages not yet read by the admin.
func CountUnread(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("side = ? AND is_read = ?", domain.SideUser, false).
		Count(&n).Error
	return n, err
}
