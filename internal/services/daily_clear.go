// Package services – DailyClear
//
// DailyClear wipes every comment list once per day at a configured hour in
// a configured time zone. It polls the clock instead of sleeping until the
// target instant, so DST changes and clock jumps are handled naturally. The
// date of the last run is stored in settings, which keeps the clear from
// repeating within the same hour or after a restart.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/internal/repo"
)

// DailyClear runs the scheduled full clear.
type DailyClear struct {
	Comments *CommentService

	Hour     int
	Location *time.Location
	Interval time.Duration

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Run polls until ctx is cancelled.
func (d *DailyClear) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	log.Info().Int("hour", d.Hour).Str("tz", d.loc().String()).Msg("daily clear scheduled")
	for {
		if _, err := d.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("daily clear failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Tick clears all lists if the local hour matches and today's clear has not
// run yet. It reports whether a clear happened.
func (d *DailyClear) Tick(ctx context.Context) (bool, error) {
	now := d.now().In(d.loc())
	if now.Hour() != d.Hour {
		return false, nil
	}
	today := now.Format(time.DateOnly)

	last, err := repo.GetSetting(ctx, d.Comments.DB, repo.SettingLastDailyClear)
	if err != nil && !isNotFound(err) {
		return false, err
	}
	if last == today {
		return false, nil
	}

	_, err = d.Comments.clearAll(ctx, ClearByDaily, func(tx *gorm.DB) error {
		return repo.PutSetting(ctx, tx, repo.SettingLastDailyClear, today)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *DailyClear) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *DailyClear) loc() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.UTC
}
