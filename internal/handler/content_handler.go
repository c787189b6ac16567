package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
	"github.com/zidalco/backend/internal/service"
	"github.com/zidalco/backend/internal/storage"
)

// maxUploadBytes bounds content image uploads.
const maxUploadBytes = 2 << 20

// imageExtensions maps accepted upload MIME types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ContentHandler serves the public content read endpoint and the admin CMS
// operations, including image upload.
type ContentHandler struct {
	contentService service.ContentService
	storage        storage.Storage
}

func NewContentHandler(s service.ContentService, st storage.Storage) *ContentHandler {
	return &ContentHandler{contentService: s, storage: st}
}

// ListPublic handles GET /api/contents. Only published, non-deleted blocks
// are returned.
func (h *ContentHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	opts := contentListOptionsFromQuery(r)
	opts.PublishedOnly = true
	opts.IncludeDeleted = false

	items, err := h.contentService.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch contents")
		return
	}
	if items == nil {
		items = []*model.Content{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "contents": items})
}

// List handles GET /api/admin/contents.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.List(r.Context(), contentListOptionsFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch contents")
		return
	}
	if items == nil {
		items = []*model.Content{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"contents": items,
		"count":    len(items),
	})
}

type createContentRequest struct {
	Location    string `json:"location"`
	Slot        string `json:"slot"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published"`
}

// Create handles POST /api/admin/contents.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.Slot) == "" {
		writeError(w, http.StatusBadRequest, "Location and slot are required")
		return
	}

	c := &model.Content{
		Location:    req.Location,
		Slot:        req.Slot,
		Title:       req.Title,
		Body:        req.Body,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	if err := h.contentService.Create(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": c})
}

// Get handles GET /api/admin/contents/{id}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.contentService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Content not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": c})
}

// Update handles PATCH /api/admin/contents/{id}.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if upd == (model.ContentUpdate{}) {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.contentService.Update(r.Context(), r.PathValue("id"), upd); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Content updated successfully"})
}

// Delete handles DELETE /api/admin/contents/{id}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Content removed"})
}

// Upload handles POST /api/admin/contents/upload. Accepts one multipart
// "image" part, jpeg/png/webp, up to 2MB.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Image must be 2MB or smaller")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "Image must be JPEG, PNG, or WebP")
		return
	}

	key := path.Join("contents", uuid.NewString()+ext)
	url, err := h.storage.Save(r.Context(), key, file, contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "image_url": url})
}

func contentListOptionsFromQuery(r *http.Request) model.ContentListOptions {
	q := r.URL.Query()
	opts := model.ContentListOptions{
		Location:       q.Get("location"),
		PublishedOnly:  q.Get("published") == "true",
		IncludeDeleted: q.Get("include_deleted") == "true",
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}
