// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model: pool mutations, the conditional claim used by draws, and reads.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// Pick orders for unused comments.
const (
	OrderFirst  = "first"
	OrderRandom = "random"
)

// AddComment inserts an unused comment into a list. It returns ErrDuplicate
// when the id already exists in that list.
func AddComment(ctx context.Context, db *gorm.DB, listID, id, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ListID:    listID,
		ID:        id,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}

// GetComment fetches one comment by (listID, id), or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, listID, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("list_id = ? AND id = ?", listID, id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveComment deletes one comment, or returns ErrNotFound.
func RemoveComment(ctx context.Context, db *gorm.DB, listID, id string) error {
	res := db.WithContext(ctx).Where("list_id = ? AND id = ?", listID, id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListComments returns the comments of a list in insertion order. When
// unusedOnly is true only unclaimed records are returned.
func ListComments(ctx context.Context, db *gorm.DB, listID string, unusedOnly bool) ([]domain.Comment, error) {
	out := []domain.Comment{}
	q := db.WithContext(ctx).Where("list_id = ?", listID)
	if unusedOnly {
		q = q.Where("used = ?", false)
	}
	err := q.Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// CountComments counts the comments of a list, optionally only unused ones.
func CountComments(ctx context.Context, db *gorm.DB, listID string, unusedOnly bool) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(&domain.Comment{}).Where("list_id = ?", listID)
	if unusedOnly {
		q = q.Where("used = ?", false)
	}
	err := q.Count(&n).Error
	return n, err
}

// PickUnused returns up to limit unused comments of a list. OrderFirst
// yields the oldest records (created_at, then id); OrderRandom shuffles.
func PickUnused(ctx context.Context, db *gorm.DB, listID, order string, limit int) ([]domain.Comment, error) {
	out := []domain.Comment{}
	q := db.WithContext(ctx).Where("list_id = ? AND used = ?", listID, false)
	if order == OrderRandom {
		q = q.Order("RANDOM()")
	} else {
		q = q.Order("created_at ASC, id ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// ClaimComment flips one comment from unused to used. It is a conditional
// update: when the record is missing or already used it returns ErrNotFound
// and changes nothing.
func ClaimComment(ctx context.Context, db *gorm.DB, listID, id string, at time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("list_id = ? AND id = ? AND used = ?", listID, id, false).
		Updates(map[string]any{"used": true, "used_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrNotFound
	}
	return nil
}

// ResetComments marks every comment of a list unused again and returns the
// number of records that changed.
func ResetComments(ctx context.Context, db *gorm.DB, listID string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("list_id = ? AND used = ?", listID, true).
		Updates(map[string]any{"used": false, "used_at": nil})
	return res.RowsAffected, res.Error
}
