package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so the FK pragma applies to every statement.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(CommentList{}).TableName(): "comment_lists",
		(Comment{}).TableName():     "comments",
		(DrawRecord{}).TableName():  "draw_records",
		(Setting{}).TableName():     "settings",
		(Message{}).TableName():     "messages",
		(RatingImage{}).TableName(): "rating_images",
		(ImageBlob{}).TableName():   "image_blobs",
		(Idempotency{}).TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_KeysIndexesAndCascades(t *testing.T) {
	db := newDomainDB(t)

	models := []any{&CommentList{}, &Comment{}, &DrawRecord{}, &Setting{}, &Message{}, &RatingImage{}, &ImageBlob{}}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range models {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Comment{}, "idx_comments_pool") {
		t.Fatalf("expected index idx_comments_pool on comments")
	}
	if !m.HasIndex(&Message{}, "idx_thread_msgs") {
		t.Fatalf("expected index idx_thread_msgs on messages")
	}

	now := time.Now().UTC()
	for _, id := range []string{"a", "b"} {
		if err := db.Create(&CommentList{ID: id, CreatedAt: now, UpdatedAt: now}).Error; err != nil {
			t.Fatalf("insert list %s: %v", id, err)
		}
	}

	// Comment ids are unique per list, not globally.
	if err := db.Create(&Comment{ListID: "a", ID: "1", Content: "x", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert a/1: %v", err)
	}
	if err := db.Create(&Comment{ListID: "b", ID: "1", Content: "y", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert b/1: %v", err)
	}
	if err := db.Create(&Comment{ListID: "a", ID: "1", Content: "dup", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected primary key violation for duplicate a/1")
	}

	// One draw per (device, list).
	if err := db.Create(&DrawRecord{DeviceID: "d1", ListID: "a", CommentID: "1", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert draw: %v", err)
	}
	if err := db.Create(&DrawRecord{DeviceID: "d1", ListID: "a", CommentID: "2", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected primary key violation for second draw of d1 on a")
	}

	// CASCADE: deleting a list removes its comments and draw records only.
	if err := db.Delete(&CommentList{}, "id = ?", "a").Error; err != nil {
		t.Fatalf("delete list: %v", err)
	}
	var cnt int64
	db.Model(&Comment{}).Where("list_id = ?", "a").Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected comments of a to cascade-delete, got %d", cnt)
	}
	db.Model(&DrawRecord{}).Where("list_id = ?", "a").Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected draw records of a to cascade-delete, got %d", cnt)
	}
	db.Model(&Comment{}).Where("list_id = ?", "b").Count(&cnt)
	if cnt != 1 {
		t.Fatalf("comments of b must survive, got %d", cnt)
	}

	// Side is constrained to user|admin.
	if err := db.Create(&Message{ID: "m1", Side: "robot", Content: "hi", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected check constraint violation for side=robot")
	}
	if err := db.Create(&Message{ID: "m2", Side: SideUser, Content: "hi", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert user message: %v", err)
	}
}
