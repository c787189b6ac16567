package model

import "time"

// Feedback statuses. The status column is free text in the store; these are
// the values this service writes itself.
const (
	FeedbackStatusNew     = "new"
	FeedbackStatusReplied = "replied"
	StatusDeleted         = "deleted"
)

// Feedback represents a message submitted via the public feedback form.
type Feedback struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // free-text category, defaults to "general"
	Status    string    `json:"status"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions carries filter and pagination parameters for feedback and
// email listings.
type ListOptions struct {
	// Status filters by record status. When empty, soft-deleted records are
	// excluded; an explicit value (including "deleted") replaces that default.
	Status string
	Limit  int
	Offset int
}
