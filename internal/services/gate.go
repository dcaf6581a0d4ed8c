package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/access"
	"github.com/tbourn/go-comment-dispenser/internal/observability"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// Credential gates, used as metric labels.
const (
	gateAdmin = "admin"
	gateBulk  = "bulk"
)

// requireAdmin fails with ErrUnauthorized unless code matches the configured
// admin access code. Callers invoke it before reading or writing anything.
func requireAdmin(code, expected string) error {
	if !access.Verify(code, expected) {
		observability.ObserveRejected(gateAdmin)
		return ErrUnauthorized
	}
	return nil
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way.
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
