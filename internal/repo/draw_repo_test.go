package repo

import (
	"context"
	"testing"
	"time"
)

func TestDrawRecords_Lifecycle(t *testing.T) {
	db := newTestDB(t, poolModels()...)
	ctx := context.Background()
	for _, id := range []string{"b", "a"} {
		_, _ = CreateList(ctx, db, id)
	}

	if ok, err := HasDrawn(ctx, db, "d1", "a"); err != nil || ok {
		t.Fatalf("HasDrawn before = (%v, %v)", ok, err)
	}
	now := time.Now().UTC()
	if err := CreateDrawRecord(ctx, db, "d1", "b", "7", now); err != nil {
		t.Fatalf("CreateDrawRecord b: %v", err)
	}
	if err := CreateDrawRecord(ctx, db, "d1", "a", "3", now); err != nil {
		t.Fatalf("CreateDrawRecord a: %v", err)
	}
	if err := CreateDrawRecord(ctx, db, "d1", "a", "4", now); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	rec, err := GetDrawRecord(ctx, db, "d1", "a")
	if err != nil || rec.CommentID != "3" {
		t.Fatalf("GetDrawRecord = (%+v, %v)", rec, err)
	}
	recs, err := ListDrawRecords(ctx, db, "d1")
	if err != nil || len(recs) != 2 || recs[0].ListID != "a" || recs[1].ListID != "b" {
		t.Fatalf("ListDrawRecords = (%+v, %v)", recs, err)
	}
	if other, _ := ListDrawRecords(ctx, db, "d2"); len(other) != 0 {
		t.Fatalf("d2 must have no history, got %+v", other)
	}

	n, err := DeleteDrawRecords(ctx, db, "a")
	if err != nil || n != 1 {
		t.Fatalf("DeleteDrawRecords = (%d, %v)", n, err)
	}
	if ok, _ := HasDrawn(ctx, db, "d1", "a"); ok {
		t.Fatalf("history for a should be cleared")
	}
}
