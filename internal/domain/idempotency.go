// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// Idempotency records the comment handed out for a draw request, keyed by
// (device_id, list_id, key). A retried draw carrying the same key replays the
// stored comment instead of failing with "already generated".
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	DeviceID  string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_device_list_key,priority:1"`
	ListID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_device_list_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_device_list_key,priority:3"`
	CommentID string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
