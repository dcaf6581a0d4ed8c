package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-comment-dispenser/internal/services"
)

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		failService(c, errors.New("disk on fire"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if strings.Contains(resp.Message, "disk on fire") {
		t.Fatalf("internal error leaked to client: %q", resp.Message)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_404_And_SuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-404")
		c.Next()
	})
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope")
	})
	r.GET("/ok", func(c *gin.Context) {
		ok(c, http.StatusCreated, gin.H{"ok": true})
	})
	r.DELETE("/gone", func(c *gin.Context) {
		noContent(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json 404: %v", err)
	}
	if w.Code != http.StatusNotFound || er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "nope" {
		t.Fatalf("unexpected 404: %d %+v", w.Code, er)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("ok: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gone", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent: %d %q", w.Code, w.Body.String())
	}
}

func Test_notModified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if notModified(c, `W/"lists:1:2"`) {
			return
		}
		ok(c, http.StatusOK, gin.H{"fresh": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK || w.Header().Get("ETag") != `W/"lists:1:2"` {
		t.Fatalf("first: %d etag=%q", w.Code, w.Header().Get("ETag"))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("If-None-Match", `W/"lists:1:2"`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("want 304, got %d", w.Code)
	}
}

func Test_classify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
		{services.ErrAlreadyGenerated, http.StatusConflict, ErrCodeAlreadyGenerated},
		{services.ErrListLocked, http.StatusLocked, ErrCodeListLocked},
		{services.ErrListNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrCommentNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrImageNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrListExists, http.StatusConflict, ErrCodeConflict},
		{services.ErrCommentExists, http.StatusConflict, ErrCodeConflict},
		{services.ErrImageTooLarge, http.StatusRequestEntityTooLarge, ErrCodeTooLarge},
		{services.ErrInvalidID, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrInvalidCount, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrEmptyContent, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrTooLong, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrUnsupportedImage, http.StatusBadRequest, ErrCodeBadRequest},
		{fmt.Errorf("wrapped: %w", services.ErrListNotFound), http.StatusNotFound, ErrCodeNotFound},
		{errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		status, code, _ := classify(tc.err)
		if status != tc.status || code != tc.code {
			t.Errorf("%v: got (%d,%s) want (%d,%s)", tc.err, status, code, tc.status, tc.code)
		}
	}

	if _, _, msg := classify(services.ErrAlreadyGenerated); msg != "can only generate one comment per list" {
		t.Fatalf("already_generated message changed: %q", msg)
	}
}
