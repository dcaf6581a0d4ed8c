// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// DrawRecord model (the per-device history ledger).
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// GetDrawRecord returns the ledger entry for (deviceID, listID), or
// ErrNotFound when the device has not drawn from the list.
func GetDrawRecord(ctx context.Context, db *gorm.DB, deviceID, listID string) (*domain.DrawRecord, error) {
	var r domain.DrawRecord
	err := db.WithContext(ctx).
		Where("device_id = ? AND list_id = ?", deviceID, listID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// HasDrawn reports whether a ledger entry exists for (deviceID, listID).
func HasDrawn(ctx context.Context, db *gorm.DB, deviceID, listID string) (bool, error) {
	_, err := GetDrawRecord(ctx, db, deviceID, listID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CreateDrawRecord inserts a ledger entry. The (device_id, list_id) primary
// key rejects a second entry with ErrDuplicate.
func CreateDrawRecord(ctx context.Context, db *gorm.DB, deviceID, listID, commentID string, at time.Time) error {
	r := &domain.DrawRecord{
		DeviceID:  deviceID,
		ListID:    listID,
		CommentID: commentID,
		CreatedAt: at,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListDrawRecords returns a device's ledger entries ordered by list id.
func ListDrawRecords(ctx context.Context, db *gorm.DB, deviceID string) ([]domain.DrawRecord, error) {
	out := []domain.DrawRecord{}
	err := db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("list_id ASC").
		Find(&out).Error
	return out, err
}

// DeleteDrawRecords removes every ledger entry of a list and returns how
// many were removed.
func DeleteDrawRecords(ctx context.Context, db *gorm.DB, listID string) (int64, error) {
	res := db.WithContext(ctx).Where("list_id = ?", listID).Delete(&domain.DrawRecord{})
	return res.RowsAffected, res.Error
}
