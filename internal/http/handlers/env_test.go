package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/http/middleware"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
	"github.com/tbourn/go-comment-dispenser/internal/services"
)

const testCode = "letmein"

// ---------- test DB + repo shim ----------

func newHandlersDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testMessageRepo implements services.MessageRepo using the repo package.
type testMessageRepo struct{}

func (testMessageRepo) CreateMessage(ctx context.Context, db *gorm.DB, thread, side, content string) (*domain.Message, error) {
	return repo.CreateMessage(ctx, db, thread, side, content)
}
func (testMessageRepo) ListThreadMessages(ctx context.Context, db *gorm.DB, thread string) ([]domain.Message, error) {
	return repo.ListThreadMessages(ctx, db, thread)
}
func (testMessageRepo) ListAllMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error) {
	return repo.ListAllMessages(ctx, db)
}
func (testMessageRepo) CountUnread(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountUnread(ctx, db)
}

// ---------- engine ----------

type testEnv struct {
	db *gorm.DB
	r  *gin.Engine
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlersDB(t)
	st := services.NewStore()
	h := New(
		&services.CommentService{DB: db, Store: st, AccessCode: testCode, AllowAddWhenLocked: true, MaxCommentRunes: 200},
		&services.DrawService{DB: db, Store: st, Policy: repo.OrderFirst},
		&services.BulkService{DB: db, Store: st, AccessCode: testCode, Policy: repo.OrderFirst, MaxCount: 10},
		services.NewChatService(db, testMessageRepo{}, testCode),
		&services.ImageService{DB: db, Blobs: services.DBBlobStore{DB: db}, AccessCode: testCode, MaxBytes: 1 << 10},
	)
	h.MaxUploadBytes = 1 << 10

	r := gin.New()
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	mount(r, h)
	return &testEnv{db: db, r: r}
}

// mount registers every handler without a base path.
func mount(r *gin.Engine, h *Handlers) {
	r.GET("/lists", h.ListIDs)
	r.GET("/lists/locked", h.LockedListIDs)
	r.GET("/lists/:id/locked", h.IsLocked)
	r.GET("/lists/:id/remaining", h.Remaining)
	r.GET("/lists/:id/available", h.Available)
	r.POST("/lists/:id/generate", h.Generate)
	r.POST("/lists/:id/bulk", h.BulkGenerate)
	r.GET("/history", h.History)
	r.POST("/messages", h.SendMessage)
	r.GET("/messages", h.ListMessages)
	r.POST("/rating-images", h.UploadImage)

	r.POST("/admin/lists", h.CreateList)
	r.DELETE("/admin/lists", h.ClearAll)
	r.DELETE("/admin/lists/:id", h.DeleteList)
	r.GET("/admin/lists/totals", h.AllListTotals)
	r.GET("/admin/lists/locked/total", h.LockedListsTotal)
	r.POST("/admin/lists/:id/comments", h.AddComment)
	r.GET("/admin/lists/:id/comments", h.CommentList)
	r.DELETE("/admin/lists/:id/comments/:commentId", h.RemoveComment)
	r.GET("/admin/lists/:id/total", h.CommentListTotal)
	r.POST("/admin/lists/:id/reset", h.ResetList)
	r.POST("/admin/lists/:id/lock", h.LockList)
	r.POST("/admin/lists/:id/unlock", h.UnlockList)
	r.PUT("/admin/bulk-key", h.SetBulkKey)
	r.DELETE("/admin/bulk-key", h.ResetBulkKey)
	r.GET("/admin/bulk-key", h.GetBulkKey)
	r.GET("/admin/messages", h.AdminMessages)
	r.POST("/admin/messages", h.ReplyMessage)
	r.GET("/admin/rating-images", h.ListImages)
	r.GET("/admin/rating-images/count", h.CountImages)
	r.GET("/admin/rating-images/total", h.TotalImages)
	r.GET("/admin/rating-images/:id/content", h.ImageContent)
	r.DELETE("/admin/rating-images/:userName/:id", h.RemoveImage)
	r.DELETE("/admin/rating-images", h.RemoveAllImages)
}

// do performs a request. body may be nil, a string, or any JSON-encodable value.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func admin() map[string]string { return map[string]string{HeaderAccessCode: testCode} }

func device(id string) map[string]string { return map[string]string{HeaderDeviceID: id} }

// seed creates list id with comments "1".."n" through the admin API.
func (e *testEnv) seed(t *testing.T, id string, n int) {
	t.Helper()
	if w := e.do(t, http.MethodPost, "/admin/lists", gin.H{"list_id": id}, admin()); w.Code != http.StatusCreated {
		t.Fatalf("create %s: %d %s", id, w.Code, w.Body.String())
	}
	for i := 1; i <= n; i++ {
		body := gin.H{"id": fmt.Sprint(i), "content": fmt.Sprintf("comment %d", i)}
		if w := e.do(t, http.MethodPost, "/admin/lists/"+id+"/comments", body, admin()); w.Code != http.StatusCreated {
			t.Fatalf("add %s/%d: %d %s", id, i, w.Code, w.Body.String())
		}
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}
