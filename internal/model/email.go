package model

import "time"

// Email statuses written by this service. "sent" is recorded before the
// delivery attempt; a failed attempt flips the record to "failed".
const (
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusReplied = "replied"
)

// Email represents a contact-form message that is both stored and delivered
// to a recipient address over SMTP.
type Email struct {
	ID             int64     `json:"id,omitempty"`
	SenderName     string    `json:"sender_name"`
	SenderEmail    string    `json:"sender_email"`
	SenderPhone    string    `json:"sender_phone"`
	Message        string    `json:"message"`
	RecipientEmail string    `json:"recipient_email"`
	Status         string    `json:"status"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
