// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger. It never logs
// bodies, masks credential headers (the admin access code and the bulk key
// among them), scrubs credential query parameters, and redacts obvious PII
// patterns from whatever remains.
//
// Usage:
//
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Redaction placeholders.
const (
	redacted      = "[REDACTED]"
	redactedID    = "[REDACTED:id]"
	redactedEmail = "[REDACTED:email]"
)

// alwaysMasked lists headers whose values are never logged.
var alwaysMasked = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Access-Code",
	"X-Bulk-Key",
}

// alwaysMaskedParams lists query parameters whose values are never logged.
var alwaysMaskedParams = []string{"access_code", "code", "key", "bulk_key"}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
)

// RedactOptions extends the built-in mask lists. Matching is
// case-insensitive.
type RedactOptions struct {
	MaskHeaders     []string
	MaskQueryParams []string
}

// scrub redacts UUIDs and email addresses.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, redactedID)
	return emailRE.ReplaceAllString(s, redactedEmail)
}

// scrubQuery masks credential parameters and scrubs the rest. An unparsable
// query is scrubbed as a whole.
func scrubQuery(raw string, masked map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return scrub(raw)
	}
	for k, vs := range vals {
		if _, ok := masked[strings.ToLower(k)]; ok {
			vals[k] = []string{redacted}
			continue
		}
		for i := range vs {
			vs[i] = scrub(vs[i])
		}
	}
	// Encode escapes the brackets; unescape so the log stays readable.
	out, err := url.QueryUnescape(vals.Encode())
	if err != nil {
		return vals.Encode()
	}
	return out
}

func lowerSet(base, extra []string) map[string]struct{} {
	m := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				m[v] = struct{}{}
			}
		}
	}
	return m
}

// RedactingLogger returns a Gin middleware that writes one structured line
// per request with credentials and PII scrubbed. It also stores a
// request-scoped logger (request_id, device_id) for LoggerFrom.
//
// The level is error for 5xx or when handlers recorded gin errors, warn for
// 4xx, info otherwise. Gin error texts are not logged verbatim at 4xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := lowerSet(alwaysMasked, opts.MaskHeaders)
	maskParams := lowerSet(alwaysMaskedParams, opts.MaskQueryParams)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = scrub(c.Request.URL.Path)
		}
		rid, _ := c.Get(requestIDKey)
		reqID := asString(rid)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		scoped := log.With().
			Str("request_id", reqID).
			Str("device_id", DeviceIDFrom(c)).
			Logger()
		c.Set("logger", &scoped)

		safeQuery := truncate(scrubQuery(c.Request.URL.RawQuery, maskParams), maxQueryLogLength)
		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = redacted
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		ev := scoped.Info()
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = scoped.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= 400:
			ev = scoped.Warn()
		}

		ev.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
