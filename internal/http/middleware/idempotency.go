// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for draws. The validator
// checks the header, stashes the key for handlers, and, when a lookup is
// supplied, marks requests that will replay a stored draw so the rate limiter
// lets them through. Replay itself happens in the draw service, inside the
// same transaction that would otherwise allocate a new comment.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to make a draw
// retry-safe. The value must stay stable across retries of one draw.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: a stored result exists
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting
)

// defaultKeyPattern accepts RFC 7230 token characters plus ':' and '~'.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found a stored draw for this request.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses defaultKeyPattern.
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a still-valid draw exists for
// (deviceID, listID, key) at now. Lookup errors are treated as "no replay".
type IdempotencyLookup func(ctx context.Context, deviceID, listID, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header and stashes it.
//
//   - No header: no-op.
//   - Invalid header: 400 with the standard error envelope.
//   - Unsafe method with a lookup hit: marks replay and rate-limit bypass.
//
// The list id is taken from the :id route parameter and the device from
// DeviceID() or the X-Device-ID header.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_request",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && !isSafeMethod(c.Request.Method) {
			device := DeviceIDFrom(c)
			if device == "" {
				device = strings.TrimSpace(c.GetHeader(DeviceIDHeader))
			}
			listID := c.Param("id")
			if device != "" && listID != "" {
				if exists, _ := lookup(c.Request.Context(), device, listID, key, time.Now().UTC()); exists {
					c.Set(ctxKeyIdemReplay, true)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}

		c.Next()
	}
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
