// Package services – BulkService
//
// BulkService is the bulk export gate: a second secret, independent of the
// admin access code, that unlocks claiming several unused comments at once.
// Bulk claims bypass the per-device restriction entirely; they neither read
// nor write draw records, and they are allowed on locked lists.
//
// The key lives in the settings table so it survives restarts. An unset key
// disables bulk generation.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/access"
	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/observability"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// BulkService gates and performs bulk claims.
type BulkService struct {
	DB    *gorm.DB
	Store *Store

	// AccessCode is the admin secret required for key management.
	AccessCode string
	// Policy is repo.OrderFirst or repo.OrderRandom.
	Policy string
	// MaxCount caps a single bulk request.
	MaxCount int
}

// Generate claims up to count unused comments from listID. When fewer are
// available the shorter slice is returned; an exhausted list yields an empty
// slice.
func (s *BulkService) Generate(ctx context.Context, bulkKey, listID string, count int) ([]domain.Comment, error) {
	tr := otel.Tracer("services/BulkService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("list.id", listID),
			attribute.Int("count", count),
		),
	)
	defer span.End()

	if err := s.CheckKey(ctx, bulkKey); err != nil {
		return nil, err
	}
	if count < 1 || (s.MaxCount > 0 && count > s.MaxCount) {
		return nil, ErrInvalidCount
	}
	lid, err := cleanID(listID)
	if err != nil {
		return nil, err
	}

	unlock := s.Store.LockList(lid)
	defer unlock()

	out := []domain.Comment{}
	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetList(ctx, tx, lid); err != nil {
			if isNotFound(err) {
				return ErrListNotFound
			}
			return err
		}
		picked, err := repo.PickUnused(ctx, tx, lid, s.Policy, count)
		if err != nil {
			return err
		}
		for _, c := range picked {
			if err := repo.ClaimComment(ctx, tx, lid, c.ID, now); err != nil {
				if isNotFound(err) {
					return fmt.Errorf("claim %s/%s: comment no longer unused", lid, c.ID)
				}
				return err
			}
			c.Used = true
			c.UsedAt = &now
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.ObserveBulk(len(out))
	span.SetAttributes(attribute.Int("claimed", len(out)))
	return out, nil
}

// CheckKey verifies bulkKey against the stored key. An unset key rejects
// everything with ErrUnauthorized.
func (s *BulkService) CheckKey(ctx context.Context, bulkKey string) error {
	stored, err := s.storedKey(ctx)
	if err != nil {
		return err
	}
	if !access.Verify(bulkKey, stored) {
		observability.ObserveRejected(gateBulk)
		return ErrUnauthorized
	}
	return nil
}

// SetKey overwrites the bulk generator key.
func (s *BulkService) SetKey(ctx context.Context, code, key string) error {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyContent
	}
	if err := repo.PutSetting(ctx, s.DB, repo.SettingBulkKey, key); err != nil {
		return err
	}
	log.Info().Msg("bulk generator key updated")
	return nil
}

// ResetKey clears the bulk generator key, disabling bulk generation. The
// row is kept with an empty value so a later SeedKey cannot bring the old
// key back.
func (s *BulkService) ResetKey(ctx context.Context, code string) error {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return err
	}
	if err := repo.PutSetting(ctx, s.DB, repo.SettingBulkKey, ""); err != nil {
		return err
	}
	log.Info().Msg("bulk generator key reset")
	return nil
}

// GetKey returns the current key, or nil when unset. With masked=true the
// fixed placeholder is returned instead of the real value.
func (s *BulkService) GetKey(ctx context.Context, code string, masked bool) (*string, error) {
	if err := requireAdmin(code, s.AccessCode); err != nil {
		return nil, err
	}
	k, err := s.storedKey(ctx)
	if err != nil {
		return nil, err
	}
	if k == "" {
		return nil, nil
	}
	if masked {
		k = access.Mask(k)
	}
	return &k, nil
}

// SeedKey stores seed as the key only when no key has ever been stored,
// including a key that was later reset. It runs at startup and reports
// whether the seed was written.
func (s *BulkService) SeedKey(ctx context.Context, seed string) (bool, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return false, nil
	}
	return repo.PutSettingIfAbsent(ctx, s.DB, repo.SettingBulkKey, seed)
}

func (s *BulkService) storedKey(ctx context.Context) (string, error) {
	k, err := repo.GetSetting(ctx, s.DB, repo.SettingBulkKey)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil
	}
	return k, err
}
