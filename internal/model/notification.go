package model

import "time"

// Notification is the uniform shape of an item in the admin notifications
// feed, built from unread feedback and email records.
type Notification struct {
	Type    string    `json:"type"` // "feedback" | "email"
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"` // first 100 chars of the source message
	Time    time.Time `json:"time"`
	Data    any       `json:"data"` // the full source record
}

// DashboardStats aggregates the four admin dashboard counters. The counts
// come from independent queries and may reflect slightly different instants.
type DashboardStats struct {
	TotalFeedback  int64 `json:"total_feedback"`
	TotalEmails    int64 `json:"total_emails"`
	UnreadFeedback int64 `json:"unread_feedback"`
	UnreadEmails   int64 `json:"unread_emails"`
}
