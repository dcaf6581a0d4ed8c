package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveWith(t *testing.T, opt SecurityOptions, pre gin.HandlerFunc, req *http.Request) http.Header {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	h := serveWith(t, SecurityOptions{}, func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-1")
		c.Next()
	}, httptest.NewRequest(http.MethodGet, "/lists", nil))

	if h.Get("X-Content-Type-Options") != "nosniff" || h.Get("X-Frame-Options") != "DENY" || h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	if h.Get("Permissions-Policy") != "" || h.Get("Cache-Control") != "" || h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("unexpected optional headers: %#v", h)
	}
	if h.Get("Access-Control-Expose-Headers") != "X-Request-ID" {
		t.Fatalf("expose=%q", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestSecurityHeaders_ExposeMerging(t *testing.T) {
	pre := func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-1")
		c.Header("Access-Control-Expose-Headers", "Foo, x-request-id")
		c.Next()
	}
	h := serveWith(t, SecurityOptions{Expose: []string{"ETag", "Foo"}}, pre, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := h.Get("Access-Control-Expose-Headers"); got != "Foo, x-request-id, ETag" {
		t.Fatalf("expose=%q", got)
	}
}

func TestSecurityHeaders_NoStorePrefixes(t *testing.T) {
	opt := SecurityOptions{NoStorePrefixes: []string{"/api/v1/admin"}}

	h := serveWith(t, opt, nil, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bulk-key", nil))
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("admin path should be no-store: %#v", h)
	}
	h = serveWith(t, opt, nil, httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil))
	if h.Get("Cache-Control") != "" {
		t.Fatalf("public path should be cacheable: %#v", h)
	}
}

func TestSecurityHeaders_PolicyAndHSTS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour, NoStore: true, EnablePolicy: true}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	h := serveWith(t, opt, nil, req)
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("missing policy headers: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" {
		t.Fatalf("missing no-store: %#v", h)
	}
	if got := h.Get("Strict-Transport-Security"); got != "max-age=86400; includeSubDomains; preload" {
		t.Fatalf("HSTS=%q", got)
	}

	h = serveWith(t, opt, nil, httptest.NewRequest(http.MethodGet, "/", nil))
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must not be sent over plain HTTP")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := serveWith(t, SecurityOptions{EnableHSTS: true}, nil, req).Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=15552000") {
		t.Fatalf("default max-age HSTS=%q", got)
	}
}
