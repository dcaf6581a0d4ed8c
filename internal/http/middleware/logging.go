// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the correlation and identity middleware plus panic
// recovery:
//
//   - RequestID() propagates or mints X-Request-ID.
//   - DeviceID() reads X-Device-ID once so logging, rate limiting, and
//     handlers agree on the caller's device identity.
//   - Recovery() converts panics into the JSON error envelope.
//   - LoggerFrom() returns the request-scoped logger that RedactingLogger
//     stores in the context.
//
// Recommended order: RequestID, DeviceID, RedactingLogger, Recovery.
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"

	// deviceIDKey is the Gin context key under which the device id is stored.
	deviceIDKey = "deviceID"
	// DeviceIDHeader carries the caller's stable device identity.
	DeviceIDHeader = "X-Device-ID"

	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
	// maxDeviceIDLength caps what is stored from X-Device-ID; longer values
	// are rejected later by the services.
	maxDeviceIDLength = 256
)

// RequestID attaches (or propagates) a correlation identifier per request.
// The incoming X-Request-ID is reused when present, otherwise a UUIDv4 is
// generated. The id is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// DeviceID stores the trimmed X-Device-ID header in the Gin context. A
// missing header leaves the context untouched; endpoints that need a device
// reject the request themselves.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(DeviceIDHeader)); id != "" {
			c.Set(deviceIDKey, truncate(id, maxDeviceIDLength))
		}
		c.Next()
	}
}

// DeviceIDFrom returns the device id stored by DeviceID, or "".
func DeviceIDFrom(c *gin.Context) string {
	v, _ := c.Get(deviceIDKey)
	return asString(v)
}

// Recovery intercepts panics, logs a stack trace, and answers with the JSON
// error envelope when nothing has been written yet.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", asString(rid)).
					Str("device_id", DeviceIDFrom(c)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header(requestIDHeader, asString(rid))
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"request_id": asString(rid),
						"code":       "internal_error",
						"message":    "internal server error",
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or a fallback
// logger without request fields. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate caps s at max bytes and appends an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
