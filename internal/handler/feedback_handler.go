package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
	"github.com/zidalco/backend/internal/service"
)

// FeedbackHandler serves the public feedback form and the admin views over
// stored feedback.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(s service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: s}
}

type submitFeedbackRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Type    string `json:"type"`

	// Older form builds posted sender_email/sender_phone; they are
	// fallbacks when the primary keys are absent.
	SenderEmail string `json:"sender_email"`
	SenderPhone string `json:"sender_phone"`
}

// Submit handles POST /api/feedback/submit.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Name and message are required")
		return
	}

	email := req.Email
	if email == "" {
		email = req.SenderEmail
	}
	phone := req.Phone
	if phone == "" {
		phone = req.SenderPhone
	}

	fb := &model.Feedback{
		Name:    req.Name,
		Email:   email,
		Phone:   phone,
		Message: req.Message,
		Type:    req.Type,
	}
	if err := h.feedbackService.Submit(r.Context(), fb); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Feedback submitted successfully!",
		"data":    fb,
	})
}

// List handles GET /api/feedback and GET /api/admin/feedback. The status
// query parameter, when present, replaces the default exclusion of deleted
// records.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFromQuery(r)

	items, err := h.feedbackService.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}
	if items == nil {
		items = []*model.Feedback{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"feedback": items,
		"count":    len(items),
	})
}

// Get handles GET /api/feedback/{id} and GET /api/admin/feedback/{id}.
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	fb, err := h.feedbackService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "feedback": fb})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/feedback/{id}/status.
func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := h.feedbackService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Status updated successfully"})
}

// MarkRead handles PATCH /api/feedback/{id}/read.
func (h *FeedbackHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackService.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Marked as read"})
}

// Delete handles DELETE /api/admin/feedback/{id}.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Feedback removed"})
}

// maxListLimit bounds how many records one listing request may ask for.
const maxListLimit = 200

// listOptionsFromQuery parses the shared status/limit/offset parameters.
// Unparsable values are ignored and limits above maxListLimit are clamped.
func listOptionsFromQuery(r *http.Request) model.ListOptions {
	opts := model.ListOptions{Status: r.URL.Query().Get("status")}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		if v > maxListLimit {
			v = maxListLimit
		}
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}
