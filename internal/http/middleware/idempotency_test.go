package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIdempotencyHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatal("expected no key")
	}
	if IsReplay(c) {
		t.Fatal("expected IsReplay=false by default")
	}

	c.Set(ctxKeyIdemKey, 123)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatal("non-string key must read as absent")
	}
	c.Set(ctxKeyIdemReplay, "yes")
	if IsReplay(c) {
		t.Fatal("non-bool replay flag must read as false")
	}
}

func TestIdempotencyValidator_NoHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	lookup := func(context.Context, string, string, string, time.Time) (bool, error) {
		called = true
		return true, nil
	}

	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/lists/:id/generate", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Error("key should be absent")
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/lists/a/generate", nil))
	if w.Code != http.StatusNoContent || called {
		t.Fatalf("status=%d called=%v", w.Code, called)
	}
}

func TestIdempotencyValidator_RejectsBadKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		opts IdempotencyOptions
		key  string
	}{
		{"too long", IdempotencyOptions{MaxLen: 5}, "abcdef"},
		{"default pattern", IdempotencyOptions{}, "has space"},
		{"custom pattern", IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)}, "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(IdempotencyValidator(tc.opts, nil))
			r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.Header.Set(HeaderIdempotencyKey, tc.key)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("json: %v", err)
			}
			if body["code"] != "bad_request" {
				t.Fatalf("body=%v", body)
			}
		})
	}
}

func TestIdempotencyValidator_LookupMarksReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotDevice, gotList, gotKey string
	lookup := func(_ context.Context, device, list, key string, _ time.Time) (bool, error) {
		gotDevice, gotList, gotKey = device, list, key
		return strings.HasPrefix(key, "seen"), nil
	}

	r := gin.New()
	r.Use(DeviceID(), IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/lists/:id/generate", func(c *gin.Context) {
		if IsReplay(c) && IsRateBypass(c) {
			c.String(http.StatusOK, "replay")
			return
		}
		c.String(http.StatusOK, "fresh")
	})

	send := func(key string) string {
		req := httptest.NewRequest(http.MethodPost, "/lists/morning/generate", nil)
		req.Header.Set(DeviceIDHeader, "d1")
		req.Header.Set(HeaderIdempotencyKey, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	if got := send("seen-1"); got != "replay" {
		t.Fatalf("got %q", got)
	}
	if gotDevice != "d1" || gotList != "morning" || gotKey != "seen-1" {
		t.Fatalf("lookup args: %q %q %q", gotDevice, gotList, gotKey)
	}
	if got := send("new-1"); got != "fresh" {
		t.Fatalf("got %q", got)
	}
}

func TestIdempotencyValidator_SafeMethodSkipsLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	lookup := func(context.Context, string, string, string, time.Time) (bool, error) {
		called = true
		return true, nil
	}

	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.GET("/lists/:id/remaining", func(c *gin.Context) {
		if k, _ := GetIdempotencyKey(c); k != "k1" {
			t.Errorf("key=%q", k)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/lists/a/remaining", nil)
	req.Header.Set(HeaderIdempotencyKey, "k1")
	req.Header.Set(DeviceIDHeader, "d1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if called {
		t.Fatal("lookup must not run for GET")
	}
}
