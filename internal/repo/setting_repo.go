// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides a tiny key/value store over the
// settings table.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

// Well-known setting keys.
const (
	SettingBulkKey        = "bulk_generator_key"
	SettingLastDailyClear = "last_daily_clear"
)

// GetSetting returns the stored value for key, or ErrNotFound.
func GetSetting(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var s domain.Setting
	if err := db.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

// PutSetting inserts or overwrites the value for key.
func PutSetting(ctx context.Context, db *gorm.DB, key, value string) error {
	s := &domain.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(s).Error
}

// PutSettingIfAbsent stores value only when key has no row yet. It reports
// whether a row was written.
func PutSettingIfAbsent(ctx context.Context, db *gorm.DB, key, value string) (bool, error) {
	s := &domain.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s)
	return res.RowsAffected == 1, res.Error
}
