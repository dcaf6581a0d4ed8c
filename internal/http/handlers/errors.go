// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes returned in the error
// envelope and the translation of service errors into (status, code, message)
// triples. Clients branch on the code, never on the message, with a single
// exception: the already_generated message is a fixed string that older
// clients match verbatim.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "already_generated",
//	  "message": "can only generate one comment per list"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-comment-dispenser/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeListLocked       = "list_locked"
	ErrCodeAlreadyGenerated = "already_generated"
)

// failService maps a service error onto the error envelope. Unknown errors
// become a 500 with a generic message so internals do not leak to clients.
func failService(c *gin.Context, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	fail(c, status, code, msg)
}

// classify returns the HTTP status, error code, and client-safe message for err.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing credentials"

	case errors.Is(err, services.ErrAlreadyGenerated):
		return http.StatusConflict, ErrCodeAlreadyGenerated, services.ErrAlreadyGenerated.Error()
	case errors.Is(err, services.ErrListLocked):
		return http.StatusLocked, ErrCodeListLocked, services.ErrListLocked.Error()

	case errors.Is(err, services.ErrListNotFound):
		return http.StatusNotFound, ErrCodeNotFound, services.ErrListNotFound.Error()
	case errors.Is(err, services.ErrCommentNotFound):
		return http.StatusNotFound, ErrCodeNotFound, services.ErrCommentNotFound.Error()
	case errors.Is(err, services.ErrImageNotFound):
		return http.StatusNotFound, ErrCodeNotFound, services.ErrImageNotFound.Error()

	case errors.Is(err, services.ErrListExists):
		return http.StatusConflict, ErrCodeConflict, services.ErrListExists.Error()
	case errors.Is(err, services.ErrCommentExists):
		return http.StatusConflict, ErrCodeConflict, services.ErrCommentExists.Error()

	case errors.Is(err, services.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, ErrCodeTooLarge, services.ErrImageTooLarge.Error()

	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidCount),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrTooLong),
		errors.Is(err, services.ErrUnsupportedImage):
		return http.StatusBadRequest, ErrCodeBadRequest, err.Error()
	}
	return http.StatusInternalServerError, ErrCodeInternal, "internal server error"
}
