package model

import "time"

// FeedbackReply is an admin reply attached to a feedback record.
// Replies are append-only; this service never updates or deletes them.
type FeedbackReply struct {
	ID           int64     `json:"id,omitempty"`
	FeedbackID   int64     `json:"feedback_id"`
	AdminID      *string   `json:"admin_id"` // nullable — no admin identity is tracked
	ReplyMessage string    `json:"reply_message"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmailReply is an admin reply attached to an email record.
type EmailReply struct {
	ID           int64     `json:"id,omitempty"`
	EmailID      int64     `json:"email_id"`
	AdminID      *string   `json:"admin_id"`
	ReplyMessage string    `json:"reply_message"`
	CreatedAt    time.Time `json:"created_at"`
}
