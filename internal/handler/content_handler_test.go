package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/zidalco/backend/internal/model"
)

type mockContentService struct {
	createFunc func(ctx context.Context, c *model.Content) error
	listFunc   func(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error)
	getFunc    func(ctx context.Context, id string) (*model.Content, error)
	updateFunc func(ctx context.Context, id string, upd model.ContentUpdate) error
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockContentService) Create(ctx context.Context, c *model.Content) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockContentService) List(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContentService) Get(ctx context.Context, id string) (*model.Content, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Content{ID: 1}, nil
}

func (m *mockContentService) Update(ctx context.Context, id string, upd model.ContentUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return nil
}

func (m *mockContentService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockStorage struct {
	saveFunc func(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

func (m *mockStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, data, contentType)
	}
	return "/uploads/" + key, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error { return nil }

func multipartImage(t *testing.T, contentType string, payload []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="pic"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(payload)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestContentListPublic_ForcesPublishedFilter(t *testing.T) {
	var gotOpts model.ContentListOptions
	mock := &mockContentService{
		listFunc: func(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := NewContentHandler(mock, &mockStorage{})

	rec := httptest.NewRecorder()
	h.ListPublic(rec, httptest.NewRequest(http.MethodGet, "/api/contents?location=home&include_deleted=true", nil))

	if !gotOpts.PublishedOnly {
		t.Error("public listing must only return published blocks")
	}
	if gotOpts.IncludeDeleted {
		t.Error("public listing must never include deleted blocks")
	}
	if gotOpts.Location != "home" {
		t.Errorf("expected location filter, got %q", gotOpts.Location)
	}
}

func TestContentCreate_MissingSlotRejected(t *testing.T) {
	h := NewContentHandler(&mockContentService{}, &mockStorage{})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/admin/contents",
		strings.NewReader(`{"location": "home"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContentUpdate_EmptyPatchRejected(t *testing.T) {
	h := NewContentHandler(&mockContentService{}, &mockStorage{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/contents/1", strings.NewReader(`{}`))
	req.SetPathValue("id", "1")
	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "No fields to update" {
		t.Errorf("unexpected message %v", got)
	}
}

func TestContentUpload_RejectsUnsupportedType(t *testing.T) {
	saved := false
	store := &mockStorage{
		saveFunc: func(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
			saved = true
			return "", nil
		},
	}
	h := NewContentHandler(&mockContentService{}, store)

	body, contentType := multipartImage(t, "application/pdf", []byte("%PDF"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/contents/upload", body)
	req.Header.Set("Content-Type", contentType)
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if saved {
		t.Error("unsupported file must not reach storage")
	}
}

func TestContentUpload_StoresImageAndReturnsURL(t *testing.T) {
	var gotKey, gotType string
	store := &mockStorage{
		saveFunc: func(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
			gotKey, gotType = key, contentType
			return "/uploads/" + key, nil
		},
	}
	h := NewContentHandler(&mockContentService{}, store)

	body, contentType := multipartImage(t, "image/png", []byte{0x89, 'P', 'N', 'G'})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/contents/upload", body)
	req.Header.Set("Content-Type", contentType)
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(gotKey, "contents/") || !strings.HasSuffix(gotKey, ".png") {
		t.Errorf("unexpected storage key %q", gotKey)
	}
	if gotType != "image/png" {
		t.Errorf("unexpected content type %q", gotType)
	}
	if got := decodeBody(t, rec)["image_url"]; got != "/uploads/"+gotKey {
		t.Errorf("unexpected image_url %v", got)
	}
}

func TestContentUpload_MissingFileRejected(t *testing.T) {
	h := NewContentHandler(&mockContentService{}, &mockStorage{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("title", "no image here")
	w.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/contents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
