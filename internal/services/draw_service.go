// Package services – DrawService
//
// DrawService implements single draws and the per-device history ledger.
// A draw moves the (device, list) pair from Unclaimed to Claimed exactly
// once:
//
//  1. missing list → ErrListNotFound; locked list → ErrListLocked
//  2. existing draw record → ErrAlreadyGenerated
//  3. pick one unused comment by policy; none → (nil, nil)
//  4. conditionally flip it to used and insert the draw record in one
//     transaction; either both persist or neither does
//
// Steps 1–4 run inside the list's critical section, so two draws on the same
// list never pick the same comment. The (device_id, list_id) primary key of
// draw_records rejects a second claim even if the lock were bypassed.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/observability"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// HistoryEntry is one row of a device's draw history.
type HistoryEntry struct {
	ListID   string `json:"list_id"`
	HasDrawn bool   `json:"has_drawn"`
}

// DrawService allocates comments to devices.
type DrawService struct {
	DB    *gorm.DB
	Store *Store

	// Policy is repo.OrderFirst or repo.OrderRandom.
	Policy string
	// IdempotencyTTL bounds how long a draw can be replayed by key.
	IdempotencyTTL time.Duration
}

// Generate draws one comment from listID for deviceID. An exhausted list
// yields (nil, nil).
func (s *DrawService) Generate(ctx context.Context, listID, deviceID string) (*domain.Comment, error) {
	c, _, err := s.GenerateWithKey(ctx, listID, deviceID, "")
	return c, err
}

// GenerateWithKey is Generate with an optional idempotency key. When the
// same device retries with the same key on the same list, the comment it
// already received is returned again (replayed=true) instead of
// ErrAlreadyGenerated.
func (s *DrawService) GenerateWithKey(ctx context.Context, listID, deviceID, key string) (c *domain.Comment, replayed bool, err error) {
	tr := otel.Tracer("services/DrawService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("list.id", listID),
			attribute.String("device.id", deviceID),
			attribute.Bool("idempotent", key != ""),
		),
	)
	defer span.End()

	lid, err := cleanID(listID)
	if err != nil {
		return nil, false, err
	}
	did, err := cleanID(deviceID)
	if err != nil {
		return nil, false, err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := repo.GetList(ctx, tx, lid)
		if err != nil {
			if isNotFound(err) {
				return ErrListNotFound
			}
			return err
		}

		if key != "" {
			rec, err := repo.GetIdempotency(ctx, tx, did, lid, key, now)
			switch {
			case err == nil:
				prev, err := replayable(ctx, tx, did, lid, rec.CommentID)
				if err != nil {
					return err
				}
				if prev != nil {
					c, replayed = prev, true
					return nil
				}
			case !isNotFound(err):
				return err
			}
		}

		if l.Locked {
			return ErrListLocked
		}
		drawn, err := repo.HasDrawn(ctx, tx, did, lid)
		if err != nil {
			return err
		}
		if drawn {
			return ErrAlreadyGenerated
		}

		picked, err := repo.PickUnused(ctx, tx, lid, s.Policy, 1)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			return nil
		}
		chosen := picked[0]

		if err := repo.ClaimComment(ctx, tx, lid, chosen.ID, now); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("claim %s/%s: comment no longer unused", lid, chosen.ID)
			}
			return err
		}
		if err := repo.CreateDrawRecord(ctx, tx, did, lid, chosen.ID, now); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrAlreadyGenerated
			}
			return err
		}
		if key != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, did, lid, key, chosen.ID, http.StatusOK, s.ttl()); err != nil && !errors.Is(err, repo.ErrDuplicate) {
				return err
			}
		}
		chosen.Used = true
		chosen.UsedAt = &now
		c = &chosen
		return nil
	})

	observability.ObserveDraw(drawOutcome(c, replayed, err))
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if c != nil {
		span.SetAttributes(attribute.String("comment.id", c.ID))
	}
	return c, replayed, nil
}

// replayable returns the comment a stored key points at, but only while the
// ledger still shows deviceID holding that exact comment and it is claimed.
// Anything else (a cleared or reset list, a reused id) yields nil.
func replayable(ctx context.Context, tx *gorm.DB, deviceID, listID, commentID string) (*domain.Comment, error) {
	rec, err := repo.GetDrawRecord(ctx, tx, deviceID, listID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.CommentID != commentID {
		return nil, nil
	}
	prev, err := repo.GetComment(ctx, tx, listID, commentID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !prev.Used {
		return nil, nil
	}
	return prev, nil
}

func (s *DrawService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}

func drawOutcome(c *domain.Comment, replayed bool, err error) string {
	switch {
	case errors.Is(err, ErrListLocked):
		return observability.DrawLocked
	case errors.Is(err, ErrAlreadyGenerated):
		return observability.DrawRepeated
	case errors.Is(err, ErrListNotFound):
		return observability.DrawMissing
	case err != nil:
		return observability.DrawFailed
	case replayed:
		return observability.DrawReplayed
	case c == nil:
		return observability.DrawExhausted
	default:
		return observability.DrawServed
	}
}

// History returns the lists deviceID has drawn from, ordered by list id.
// The server ledger is authoritative; client-side mirrors reconcile to it.
func (s *DrawService) History(ctx context.Context, deviceID string) ([]HistoryEntry, error) {
	tr := otel.Tracer("services/DrawService")
	ctx, span := tr.Start(ctx, "History", trace.WithAttributes(attribute.String("device.id", deviceID)))
	defer span.End()

	did, err := cleanID(deviceID)
	if err != nil {
		return nil, err
	}
	recs, err := repo.ListDrawRecords(ctx, s.DB, did)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, HistoryEntry{ListID: r.ListID, HasDrawn: true})
	}
	return out, nil
}
