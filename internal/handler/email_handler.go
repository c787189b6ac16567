package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
	"github.com/zidalco/backend/internal/service"
)

// EmailHandler serves the public contact form and the admin views over
// stored contact emails.
type EmailHandler struct {
	emailService service.EmailService
}

func NewEmailHandler(s service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: s}
}

// sendEmailRequest is the contact-form body. The wire names are the form's
// field names; they map onto the sender_* columns of the stored record.
type sendEmailRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	RecipientEmail string `json:"recipient_email"`
}

// Send handles POST /api/emails/send. All five fields are required and both
// addresses must be well-formed before any store write happens.
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Message) == "" ||
		strings.TrimSpace(req.RecipientEmail) == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !validEmail(strings.TrimSpace(req.Email)) || !validEmail(strings.TrimSpace(req.RecipientEmail)) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	em := &model.Email{
		SenderName:     req.Name,
		SenderEmail:    req.Email,
		SenderPhone:    req.Phone,
		Message:        req.Message,
		RecipientEmail: req.RecipientEmail,
	}
	if err := h.emailService.Send(r.Context(), em); err != nil {
		if errors.Is(err, service.ErrDeliveryFailed) {
			writeError(w, http.StatusInternalServerError, "Failed to send email")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save email record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email sent successfully!",
		"data":    em,
	})
}

// List handles GET /api/emails and GET /api/admin/emails.
func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.emailService.List(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch emails")
		return
	}
	if items == nil {
		items = []*model.Email{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"emails":  items,
		"count":   len(items),
	})
}

// Get handles GET /api/emails/{id} and GET /api/admin/emails/{id}.
func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	em, err := h.emailService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Email not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "email": em})
}

// UpdateStatus handles PATCH /api/emails/{id}/status.
func (h *EmailHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := h.emailService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Status updated successfully"})
}

// MarkRead handles PATCH /api/emails/{id}/read.
func (h *EmailHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.emailService.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Marked as read"})
}

// Resend handles POST /api/emails/{id}/resend.
func (h *EmailHandler) Resend(w http.ResponseWriter, r *http.Request) {
	if err := h.emailService.Resend(r.Context(), r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Email not found")
		case errors.Is(err, service.ErrDeliveryFailed):
			writeError(w, http.StatusInternalServerError, "Failed to send email")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to resend email")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Email resent successfully"})
}

// Delete handles DELETE /api/admin/emails/{id}.
func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.emailService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Email removed"})
}
