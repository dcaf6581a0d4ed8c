package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAdmin_RequiresAccessCode(t *testing.T) {
	e := newEnv(t)

	for _, hdr := range []map[string]string{nil, {HeaderAccessCode: "wrong"}} {
		w := e.do(t, http.MethodPost, "/admin/lists", gin.H{"list_id": "morning"}, hdr)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d", w.Code)
		}
		if decode[ErrorResponse](t, w).Code != ErrCodeUnauthorized {
			t.Fatalf("body=%s", w.Body.String())
		}
	}

	// Nothing was created.
	w := e.do(t, http.MethodGet, "/lists", nil, nil)
	if got := decode[ListIDsResponse](t, w); len(got.Lists) != 0 {
		t.Fatalf("lists=%v", got.Lists)
	}
}

func TestAdmin_ListLifecycle(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "morning", 2)

	if w := e.do(t, http.MethodPost, "/admin/lists", gin.H{"list_id": "morning"}, admin()); w.Code != http.StatusConflict {
		t.Fatalf("duplicate list: %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/admin/lists", gin.H{}, admin()); w.Code != http.StatusBadRequest {
		t.Fatalf("missing list_id: %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/admin/lists/morning/comments", gin.H{"id": "1", "content": "again"}, admin()); w.Code != http.StatusConflict {
		t.Fatalf("duplicate comment: %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/admin/lists/morning/comments", gin.H{"id": "3", "content": "   "}, admin()); w.Code != http.StatusBadRequest {
		t.Fatalf("blank content: %d", w.Code)
	}

	w := e.do(t, http.MethodGet, "/admin/lists/morning/total", nil, admin())
	if decode[CountResponse](t, w).Count != 2 {
		t.Fatalf("total=%s", w.Body.String())
	}

	e.do(t, http.MethodPost, "/lists/morning/generate", nil, device("d1"))

	w = e.do(t, http.MethodGet, "/admin/lists/totals", nil, admin())
	totals := decode[ListTotalsResponse](t, w)
	if len(totals.Lists) != 1 || totals.Lists[0].Total != 2 || totals.Lists[0].Remaining != 1 {
		t.Fatalf("totals=%+v", totals)
	}

	w = e.do(t, http.MethodPost, "/admin/lists/morning/reset", nil, admin())
	if w.Code != http.StatusOK || decode[AffectedResponse](t, w).Affected != 1 {
		t.Fatalf("reset: %d %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/admin/lists/morning/comments", nil, admin())
	if got := decode[CommentsResponse](t, w); len(got.Comments) != 2 {
		t.Fatalf("comments=%+v", got)
	}

	if w = e.do(t, http.MethodDelete, "/admin/lists/morning/comments/2", nil, admin()); w.Code != http.StatusNoContent {
		t.Fatalf("remove: %d", w.Code)
	}
	if w = e.do(t, http.MethodDelete, "/admin/lists/morning/comments/2", nil, admin()); w.Code != http.StatusNotFound {
		t.Fatalf("remove again: %d", w.Code)
	}

	if w = e.do(t, http.MethodDelete, "/admin/lists/morning", nil, admin()); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	if w = e.do(t, http.MethodDelete, "/admin/lists/morning", nil, admin()); w.Code != http.StatusNotFound {
		t.Fatalf("delete again: %d", w.Code)
	}
}

func TestAdmin_LockUnlockAndClearAll(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "a", 1)
	e.seed(t, "b", 1)

	if w := e.do(t, http.MethodPost, "/admin/lists/a/lock", nil, admin()); w.Code != http.StatusNoContent {
		t.Fatalf("lock: %d", w.Code)
	}
	w := e.do(t, http.MethodGet, "/admin/lists/locked/total", nil, admin())
	if decode[CountResponse](t, w).Count != 1 {
		t.Fatalf("locked total=%s", w.Body.String())
	}
	if w = e.do(t, http.MethodPost, "/admin/lists/a/unlock", nil, admin()); w.Code != http.StatusNoContent {
		t.Fatalf("unlock: %d", w.Code)
	}
	if w = e.do(t, http.MethodPost, "/admin/lists/zzz/lock", nil, admin()); w.Code != http.StatusNotFound {
		t.Fatalf("lock missing: %d", w.Code)
	}

	w = e.do(t, http.MethodDelete, "/admin/lists", nil, admin())
	if w.Code != http.StatusOK || decode[AffectedResponse](t, w).Affected != 2 {
		t.Fatalf("clear all: %d %s", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodGet, "/lists", nil, nil)
	if got := decode[ListIDsResponse](t, w); len(got.Lists) != 0 {
		t.Fatalf("lists after clear=%v", got.Lists)
	}
}
