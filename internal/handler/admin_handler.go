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

// AdminHandler serves the dashboard endpoints: stats, the notifications
// feed, replies, and read-state management.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: s}
}

// DashboardStats handles GET /api/admin/dashboard-stats.
func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.DashboardStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

// Notifications handles GET /api/admin/notifications.
func (h *AdminHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.adminService.Notifications(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	if items == nil {
		items = []*model.Notification{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": items,
		"count":         len(items),
	})
}

type replyFeedbackRequest struct {
	FeedbackID   int64  `json:"feedback_id"`
	ReplyMessage string `json:"reply_message"`
}

// ReplyFeedback handles POST /api/admin/reply-feedback.
func (h *AdminHandler) ReplyFeedback(w http.ResponseWriter, r *http.Request) {
	var req replyFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.FeedbackID <= 0 || strings.TrimSpace(req.ReplyMessage) == "" {
		writeError(w, http.StatusBadRequest, "Feedback ID and reply message are required")
		return
	}

	if err := h.adminService.ReplyFeedback(r.Context(), req.FeedbackID, req.ReplyMessage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Reply sent successfully"})
}

type replyEmailRequest struct {
	EmailID      int64  `json:"email_id"`
	ReplyMessage string `json:"reply_message"`
}

// ReplyEmail handles POST /api/admin/reply-email.
func (h *AdminHandler) ReplyEmail(w http.ResponseWriter, r *http.Request) {
	var req replyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.EmailID <= 0 || strings.TrimSpace(req.ReplyMessage) == "" {
		writeError(w, http.StatusBadRequest, "Email ID and reply message are required")
		return
	}

	if err := h.adminService.ReplyEmail(r.Context(), req.EmailID, req.ReplyMessage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Email not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Reply sent successfully"})
}

type markReadRequest struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// MarkRead handles POST /api/admin/mark-read.
func (h *AdminHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Type == "" || req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Type and ID are required")
		return
	}
	if req.Type != "feedback" && req.Type != "email" {
		writeError(w, http.StatusBadRequest, "Type must be feedback or email")
		return
	}

	if err := h.adminService.MarkRead(r.Context(), req.Type, strconv.FormatInt(req.ID, 10)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Marked as read"})
}

// MarkAllRead handles POST /api/admin/mark-all-read.
func (h *AdminHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.MarkAllRead(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "All notifications marked as read"})
}
