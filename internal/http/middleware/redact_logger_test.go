package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRedactingLogger_MasksCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), DeviceID(), RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/admin/bulk-key", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet,
		"/admin/bulk-key?masked=true&key=topsecret&email=alice@example.com", nil)
	req.Header.Set("X-Access-Code", "letmein")
	req.Header.Set("X-Bulk-Key", "bulk-secret")
	req.Header.Set("X-Api-Key", "k-123")
	req.Header.Set("X-Request-ID", "rid-1")
	req.Header.Set(DeviceIDHeader, "d1")
	req.Header.Set("X-Trace", "550e8400-e29b-41d4-a716-446655440000")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, secret := range []string{"letmein", "bulk-secret", "k-123", "topsecret", "alice@example.com", "550e8400"} {
		if strings.Contains(out, secret) {
			t.Fatalf("log leaked %q: %s", secret, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected handler line plus access line, got %d: %s", len(lines), out)
	}
	if !strings.Contains(lines[0], `"request_id":"rid-1"`) || !strings.Contains(lines[0], `"device_id":"d1"`) {
		t.Fatalf("scoped logger fields missing: %s", lines[0])
	}

	line := lastLine(t, buf)
	if line["level"] != "info" || line["path"] != "/admin/bulk-key" || line["device_id"] != "d1" {
		t.Fatalf("access line=%v", line)
	}
	q := asString(line["query"])
	if !strings.Contains(q, "masked=true") || !strings.Contains(q, "key="+redacted) || !strings.Contains(q, redactedEmail) {
		t.Fatalf("query=%q", q)
	}
}

func TestRedactingLogger_Levels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/err", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	cases := map[string]string{"/bad": "warn", "/boom": "error", "/err": "error", "/nowhere": "warn"}
	for path, want := range cases {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		line := lastLine(t, buf)
		if line["level"] != want {
			t.Fatalf("%s: level=%v want %s", path, line["level"], want)
		}
		if path == "/nowhere" && line["path"] != "/nowhere" {
			t.Fatalf("fallback path=%v", line["path"])
		}
		if path == "/err" && !strings.Contains(asString(line["errors"]), "db down") {
			t.Fatalf("errors field missing: %v", line)
		}
	}
}

func TestScrubQuery(t *testing.T) {
	masked := lowerSet(alwaysMaskedParams, nil)
	if got := scrubQuery("", masked); got != "" {
		t.Fatalf("empty: %q", got)
	}
	got := scrubQuery("Code=abc&user_name=bob", masked)
	if !strings.Contains(got, "Code="+redacted) || !strings.Contains(got, "user_name=bob") {
		t.Fatalf("got %q", got)
	}
	if got := scrubQuery("%zz=alice@example.com", masked); strings.Contains(got, "alice@") {
		t.Fatalf("unparsable query leaked: %q", got)
	}
}
