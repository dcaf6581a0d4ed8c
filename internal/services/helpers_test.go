package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

const testCode = "letmein"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	store    *Store
	comments *CommentService
	draws    *DrawService
	bulk     *BulkService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	st := NewStore()
	return &fixture{
		db:    db,
		store: st,
		comments: &CommentService{
			DB: db, Store: st, AccessCode: testCode,
			AllowAddWhenLocked: true, MaxCommentRunes: 50,
		},
		draws: &DrawService{DB: db, Store: st, Policy: repo.OrderFirst},
		bulk:  &BulkService{DB: db, Store: st, AccessCode: testCode, Policy: repo.OrderFirst, MaxCount: 10},
	}
}

// seed creates list id with comments "1".."n".
func (f *fixture) seed(t *testing.T, id string, n int) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.comments.CreateList(ctx, testCode, id); err != nil {
		t.Fatalf("CreateList %s: %v", id, err)
	}
	for i := 1; i <= n; i++ {
		cid := fmt.Sprint(i)
		if _, err := f.comments.AddComment(ctx, testCode, id, cid, "comment "+cid); err != nil {
			t.Fatalf("AddComment %s/%s: %v", id, cid, err)
		}
	}
}

func (f *fixture) remaining(t *testing.T, id string) int64 {
	t.Helper()
	n, err := f.comments.RemainingCount(context.Background(), id)
	if err != nil {
		t.Fatalf("RemainingCount %s: %v", id, err)
	}
	return n
}
