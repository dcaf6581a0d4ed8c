package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-comment-dispenser/internal/domain"
)

func TestSettings_PutGet(t *testing.T) {
	db := newTestDB(t, &domain.Setting{})
	ctx := context.Background()

	if _, err := GetSetting(ctx, db, SettingBulkKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := PutSetting(ctx, db, SettingBulkKey, "one"); err != nil {
		t.Fatalf("PutSetting: %v", err)
	}
	if err := PutSetting(ctx, db, SettingBulkKey, "two"); err != nil {
		t.Fatalf("PutSetting overwrite: %v", err)
	}
	if v, err := GetSetting(ctx, db, SettingBulkKey); err != nil || v != "two" {
		t.Fatalf("GetSetting = (%q, %v); want two", v, err)
	}
	// An empty value is a stored row, not a missing one.
	if err := PutSetting(ctx, db, SettingBulkKey, ""); err != nil {
		t.Fatalf("PutSetting empty: %v", err)
	}
	if v, err := GetSetting(ctx, db, SettingBulkKey); err != nil || v != "" {
		t.Fatalf("GetSetting after clearing = (%q, %v); want empty", v, err)
	}
	if wrote, err := PutSettingIfAbsent(ctx, db, SettingBulkKey, "seed"); err != nil || wrote {
		t.Fatalf("PutSettingIfAbsent over empty row = (%v, %v); want (false, nil)", wrote, err)
	}
}

func TestPutSettingIfAbsent(t *testing.T) {
	db := newTestDB(t, &domain.Setting{})
	ctx := context.Background()

	wrote, err := PutSettingIfAbsent(ctx, db, SettingBulkKey, "seed")
	if err != nil || !wrote {
		t.Fatalf("first PutSettingIfAbsent = (%v, %v)", wrote, err)
	}
	wrote, err = PutSettingIfAbsent(ctx, db, SettingBulkKey, "other")
	if err != nil || wrote {
		t.Fatalf("second PutSettingIfAbsent = (%v, %v); want (false, nil)", wrote, err)
	}
	if v, _ := GetSetting(ctx, db, SettingBulkKey); v != "seed" {
		t.Fatalf("value = %q; want seed", v)
	}
}
