package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// pngBytes returns a PNG signature followed by padding; enough for sniffing.
func pngBytes(n int) []byte {
	b := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	return append(b, make([]byte, n)...)
}

func (e *testEnv) upload(t *testing.T, user string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if user != "" {
		if err := mw.WriteField("user_name", user); err != nil {
			t.Fatal(err)
		}
	}
	if data != nil {
		fw, err := mw.CreateFormFile("image", "rating.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/rating-images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(HeaderDeviceID, "d1")
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func TestImages_UploadValidation(t *testing.T) {
	e := newEnv(t)

	if w := e.upload(t, "alice", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing file: %d", w.Code)
	}
	if w := e.upload(t, "", pngBytes(16)); w.Code != http.StatusBadRequest {
		t.Fatalf("missing user: %d", w.Code)
	}
	if w := e.upload(t, "alice", []byte("just some text, not an image")); w.Code != http.StatusBadRequest {
		t.Fatalf("not an image: %d", w.Code)
	}
	w := e.upload(t, "alice", pngBytes(4096))
	if w.Code != http.StatusRequestEntityTooLarge || decode[ErrorResponse](t, w).Code != ErrCodeTooLarge {
		t.Fatalf("too large: %d %s", w.Code, w.Body.String())
	}
}

func TestImages_Gallery(t *testing.T) {
	e := newEnv(t)

	w := e.upload(t, "alice", pngBytes(32))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	img := decode[struct {
		ID          string `json:"id"`
		ContentType string `json:"content_type"`
	}](t, w)
	if img.ContentType != "image/png" {
		t.Fatalf("content type=%q", img.ContentType)
	}
	e.upload(t, "bob", pngBytes(32))

	w = e.do(t, http.MethodGet, "/admin/rating-images", nil, admin())
	groups := decode[ImageGroupsResponse](t, w)
	if len(groups.Users) != 2 || groups.Users[0].UserName != "alice" {
		t.Fatalf("groups=%+v", groups)
	}

	w = e.do(t, http.MethodGet, "/admin/rating-images/count?user_name=alice", nil, admin())
	if decode[CountResponse](t, w).Count != 1 {
		t.Fatalf("count=%s", w.Body.String())
	}
	w = e.do(t, http.MethodGet, "/admin/rating-images/total", nil, admin())
	if decode[CountResponse](t, w).Count != 2 {
		t.Fatalf("total=%s", w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/admin/rating-images/"+img.ID+"/content", nil, admin())
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" || !bytes.Equal(w.Body.Bytes(), pngBytes(32)) {
		t.Fatalf("content: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w = e.do(t, http.MethodGet, "/admin/rating-images/"+img.ID+"/content", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("content without code: %d", w.Code)
	}

	if w = e.do(t, http.MethodDelete, "/admin/rating-images/bob/"+img.ID, nil, admin()); w.Code != http.StatusNotFound {
		t.Fatalf("wrong owner delete: %d", w.Code)
	}
	if w = e.do(t, http.MethodDelete, "/admin/rating-images/alice/"+img.ID, nil, admin()); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	w = e.do(t, http.MethodDelete, "/admin/rating-images", nil, admin())
	if w.Code != http.StatusOK || decode[AffectedResponse](t, w).Affected != 1 {
		t.Fatalf("delete all: %d %s", w.Code, w.Body.String())
	}
}
