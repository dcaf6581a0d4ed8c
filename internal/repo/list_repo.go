// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// CommentList model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - When a list is not found, functions return gorm.ErrRecordNotFound
//     (exported here as ErrNotFound).
//   - A duplicate list id is returned as ErrDuplicate.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// ListTotal is the per-list aggregate returned by ListTotals.
type ListTotal struct {
	ListID    string `json:"list_id"`
	Total     int64  `json:"total"`
	Remaining int64  `json:"remaining"`
	Locked    bool   `json:"locked"`
}

// CreateList inserts an empty, unlocked list. It returns ErrDuplicate when
// the id is already taken.
func CreateList(ctx context.Context, db *gorm.DB, id string) (*domain.CommentList, error) {
	now := time.Now().UTC()
	l := &domain.CommentList{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return l, nil
}

// GetList fetches a list by id, or ErrNotFound.
func GetList(ctx context.Context, db *gorm.DB, id string) (*domain.CommentList, error) {
	var l domain.CommentList
	if err := db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListIDs returns list ids in ascending order. When lockedOnly is true only
// locked lists are returned.
func ListIDs(ctx context.Context, db *gorm.DB, lockedOnly bool) ([]string, error) {
	out := []string{}
	q := db.WithContext(ctx).Model(&domain.CommentList{})
	if lockedOnly {
		q = q.Where("locked = ?", true)
	}
	err := q.Order("id ASC").Pluck("id", &out).Error
	return out, err
}

// CountLockedLists returns the number of locked lists.
func CountLockedLists(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.CommentList{}).Where("locked = ?", true).Count(&n).Error
	return n, err
}

// SetLocked updates the lock flag of a list. It returns ErrNotFound when no
// list matched.
func SetLocked(ctx context.Context, db *gorm.DB, id string, locked bool) error {
	res := db.WithContext(ctx).
		Model(&domain.CommentList{}).
		Where("id = ?", id).
		Updates(map[string]any{"locked": locked, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchList bumps updated_at so list-level ETags change after comment
// mutations.
func TouchList(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.CommentList{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}

// DeleteList removes a list together with its comments, draw records and
// idempotency keys.
// Children are deleted explicitly so the result does not depend on the
// connection having foreign_keys enabled. Call it inside a transaction.
// It returns ErrNotFound when the list does not exist.
func DeleteList(ctx context.Context, db *gorm.DB, id string) error {
	db = db.WithContext(ctx)
	if err := db.Where("list_id = ?", id).Delete(&domain.Idempotency{}).Error; err != nil {
		return err
	}
	if err := db.Where("list_id = ?", id).Delete(&domain.DrawRecord{}).Error; err != nil {
		return err
	}
	if err := db.Where("list_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&domain.CommentList{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllLists removes every list, comment, draw record and idempotency
// key. It returns the number of lists removed.
func DeleteAllLists(ctx context.Context, db *gorm.DB) (int64, error) {
	db = db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&domain.Idempotency{}).Error; err != nil {
		return 0, err
	}
	if err := db.Delete(&domain.DrawRecord{}).Error; err != nil {
		return 0, err
	}
	if err := db.Delete(&domain.Comment{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&domain.CommentList{})
	return res.RowsAffected, res.Error
}

// ListTotals returns total and remaining comment counts for every list,
// ordered by list id.
func ListTotals(ctx context.Context, db *gorm.DB) ([]ListTotal, error) {
	out := []ListTotal{}
	err := db.WithContext(ctx).
		Table("comment_lists AS l").
		Select(`l.id AS list_id,
			COUNT(c.id) AS total,
			COALESCE(SUM(CASE WHEN c.used = 0 THEN 1 ELSE 0 END), 0) AS remaining,
			l.locked AS locked`).
		Joins("LEFT JOIN comments c ON c.list_id = l.id").
		Group("l.id, l.locked").
		Order("l.id ASC").
		Scan(&out).Error
	return out, err
}
