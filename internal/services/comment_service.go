// Package services – CommentService
//
// CommentService owns the comment pool: list lifecycle (create, delete,
// clear, lock, unlock, reset) and the records inside each list. Every
// privileged method checks the admin access code before touching state, and
// every mutation of a list runs inside that list's critical section (see
// Store) and a single database transaction.
//
// Observability: public methods are OpenTelemetry-instrumented with the list
// id as span attribute.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/observability"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// Clear triggers.
const (
	ClearByAdmin = "admin"
	ClearByDaily = "daily"
)

// CommentService manages comment lists and their records.
type CommentService struct {
	DB    *gorm.DB
	Store *Store

	// AccessCode is the admin secret every privileged call must present.
	AccessCode string
	// AllowAddWhenLocked lets admins add comments to locked lists.
	AllowAddWhenLocked bool
	// ResetClearsHistory also drops the list's draw records on reset,
	// which lets devices that already drew draw again.
	ResetClearsHistory bool
	// MaxCommentRunes caps comment content (0 = unlimited).
	MaxCommentRunes int
}

func (s *CommentService) span(ctx context.Context, name, listID string) (context.Context, trace.Span) {
	return otel.Tracer("services/CommentService").Start(ctx, name,
		trace.WithAttributes(attribute.String("list.id", listID)),
	)
}

// CreateList creates an empty, unlocked list.
func (s *CommentService) CreateList(ctx context.Context, code, listID string) (*domain.CommentList, error) {
	ctx, span := s.span(ctx, "CreateList", listID)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	id, err := cleanID(listID)
	if err != nil {
		return nil, err
	}

	unlock := s.Store.LockList(id)
	defer unlock()

	l, err := repo.CreateList(ctx, s.DB, id)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrListExists
	}
	return l, err
}

// DeleteList removes a list, its comments and its draw records. Repeated
// calls fail with ErrListNotFound.
func (s *CommentService) DeleteList(ctx context.Context, code, listID string) error {
	ctx, span := s.span(ctx, "DeleteList", listID)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	id, err := cleanID(listID)
	if err != nil {
		return err
	}

	unlock := s.Store.LockList(id)
	defer unlock()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.DeleteList(ctx, tx, id)
	})
	if isNotFound(err) {
		return ErrListNotFound
	}
	return err
}

// ClearAll deletes every list, comment and draw record. It returns the
// number of lists removed.
func (s *CommentService) ClearAll(ctx context.Context, code string) (int64, error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "ClearAll")
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	return s.clearAll(ctx, ClearByAdmin, nil)
}

// clearAll wipes the pool under the global write lock. after, when set,
// runs inside the same transaction.
func (s *CommentService) clearAll(ctx context.Context, trigger string, after func(tx *gorm.DB) error) (int64, error) {
	unlock := s.Store.LockAll()
	defer unlock()

	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if n, err = repo.DeleteAllLists(ctx, tx); err != nil {
			return err
		}
		if after != nil {
			return after(tx)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	observability.ObserveClear(trigger)
	log.Info().Str("trigger", trigger).Int64("lists", n).Msg("comment lists cleared")
	return n, nil
}

// AddComment inserts a new unused record into a list.
func (s *CommentService) AddComment(ctx context.Context, code, listID, commentID, content string) (*domain.Comment, error) {
	ctx, span := s.span(ctx, "AddComment", listID)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	lid, err := cleanID(listID)
	if err != nil {
		return nil, err
	}
	cid, err := cleanID(commentID)
	if err != nil {
		return nil, err
	}
	content, err = cleanContent(content, s.MaxCommentRunes)
	if err != nil {
		return nil, err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	var out *domain.Comment
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := repo.GetList(ctx, tx, lid)
		if err != nil {
			if isNotFound(err) {
				return ErrListNotFound
			}
			return err
		}
		if l.Locked && !s.AllowAddWhenLocked {
			return ErrListLocked
		}
		c, err := repo.AddComment(ctx, tx, lid, cid, content)
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrCommentExists
			}
			return err
		}
		out = c
		return repo.TouchList(ctx, tx, lid)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveComment deletes one record from a list.
func (s *CommentService) RemoveComment(ctx context.Context, code, listID, commentID string) error {
	ctx, span := s.span(ctx, "RemoveComment", listID)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	lid, err := cleanID(listID)
	if err != nil {
		return err
	}
	cid, err := cleanID(commentID)
	if err != nil {
		return err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetList(ctx, tx, lid); err != nil {
			if isNotFound(err) {
				return ErrListNotFound
			}
			return err
		}
		if err := repo.RemoveComment(ctx, tx, lid, cid); err != nil {
			if isNotFound(err) {
				return ErrCommentNotFound
			}
			return err
		}
		return repo.TouchList(ctx, tx, lid)
	})
}

// ResetList marks every record of the list unused and returns how many
// records changed. Idempotency keys of the list are dropped. Draw records
// are kept unless ResetClearsHistory is set.
func (s *CommentService) ResetList(ctx context.Context, code, listID string) (int64, error) {
	ctx, span := s.span(ctx, "ResetList", listID)
	defer span.End()

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	lid, err := cleanID(listID)
	if err != nil {
		return 0, err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	var n int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetList(ctx, tx, lid); err != nil {
			if isNotFound(err) {
				return ErrListNotFound
			}
			return err
		}
		var err error
		if n, err = repo.ResetComments(ctx, tx, lid); err != nil {
			return err
		}
		// Reused comment ids must never replay a pre-reset draw.
		if _, err := repo.DeleteIdempotencyForList(ctx, tx, lid); err != nil {
			return err
		}
		if s.ResetClearsHistory {
			if _, err := repo.DeleteDrawRecords(ctx, tx, lid); err != nil {
				return err
			}
		}
		return repo.TouchList(ctx, tx, lid)
	})
	if err != nil {
		return 0, err
	}
	log.Debug().Str("list_id", lid).Int64("reset", n).Bool("history_cleared", s.ResetClearsHistory).Msg("comment list reset")
	return n, nil
}

// LockList suppresses ordinary draws on a list.
func (s *CommentService) LockList(ctx context.Context, code, listID string) error {
	return s.setLocked(ctx, code, listID, true)
}

// UnlockList restores ordinary draws on a list.
func (s *CommentService) UnlockList(ctx context.Context, code, listID string) error {
	return s.setLocked(ctx, code, listID, false)
}

func (s *CommentService) setLocked(ctx context.Context, code, listID string, locked bool) error {
	ctx, span := s.span(ctx, "SetLocked", listID)
	defer span.End()
	span.SetAttributes(attribute.Bool("list.locked", locked))

	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	lid, err := cleanID(listID)
	if err != nil {
		return err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	if err := repo.SetLocked(ctx, s.DB, lid, locked); err != nil {
		if isNotFound(err) {
			return ErrListNotFound
		}
		return err
	}
	return nil
}

// ListsStats returns the list count and the latest list update, the inputs
// of the list-index ETag.
func (s *CommentService) ListsStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ListsStats(ctx, s.DB)
}

// ListIDs returns every list id in ascending order.
func (s *CommentService) ListIDs(ctx context.Context) ([]string, error) {
	return repo.ListIDs(ctx, s.DB, false)
}

// LockedListIDs returns the ids of locked lists in ascending order.
func (s *CommentService) LockedListIDs(ctx context.Context) ([]string, error) {
	return repo.ListIDs(ctx, s.DB, true)
}

// IsLocked reports the lock flag of a list.
func (s *CommentService) IsLocked(ctx context.Context, listID string) (bool, error) {
	l, err := s.getList(ctx, listID)
	if err != nil {
		return false, err
	}
	return l.Locked, nil
}

// RemainingCount returns the number of unused records in a list.
func (s *CommentService) RemainingCount(ctx context.Context, listID string) (int64, error) {
	l, err := s.getList(ctx, listID)
	if err != nil {
		return 0, err
	}
	return repo.CountComments(ctx, s.DB, l.ID, true)
}

// AvailableComments returns the unused records of a list.
func (s *CommentService) AvailableComments(ctx context.Context, listID string) ([]domain.Comment, error) {
	l, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return repo.ListComments(ctx, s.DB, l.ID, true)
}

// CommentList returns every record of a list, used or not.
func (s *CommentService) CommentList(ctx context.Context, code, listID string) ([]domain.Comment, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	l, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return repo.ListComments(ctx, s.DB, l.ID, false)
}

// CommentListTotal returns the number of records in a list.
func (s *CommentService) CommentListTotal(ctx context.Context, code, listID string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	l, err := s.getList(ctx, listID)
	if err != nil {
		return 0, err
	}
	return repo.CountComments(ctx, s.DB, l.ID, false)
}

// AllListTotals returns total/remaining/locked for every list.
func (s *CommentService) AllListTotals(ctx context.Context, code string) ([]repo.ListTotal, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	return repo.ListTotals(ctx, s.DB)
}

// LockedListsTotal returns the number of locked lists.
func (s *CommentService) LockedListsTotal(ctx context.Context, code string) (int64, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return 0, err
	}
	return repo.CountLockedLists(ctx, s.DB)
}

func (s *CommentService) getList(ctx context.Context, listID string) (*domain.CommentList, error) {
	id, err := cleanID(listID)
	if err != nil {
		return nil, err
	}
	l, err := repo.GetList(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return l, nil
}
