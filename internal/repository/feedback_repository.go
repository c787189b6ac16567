package repository

import (
	"context"

	"github.com/zidalco/backend/internal/model"
)

// FeedbackRepository defines the persistence interface for feedback records.
type FeedbackRepository interface {
	// Save inserts a new feedback record and populates fb.ID from the
	// store's echoed representation.
	Save(ctx context.Context, fb *model.Feedback) error

	// List returns feedback according to the given options, newest first.
	// Without an explicit status filter, soft-deleted records are excluded.
	List(ctx context.Context, opts model.ListOptions) ([]*model.Feedback, error)

	// GetByID returns one record or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Feedback, error)

	// ListUnread returns the most recent unread records, newest first.
	ListUnread(ctx context.Context, limit int) ([]*model.Feedback, error)

	// Count counts records, excluding soft-deleted ones.
	Count(ctx context.Context, unreadOnly bool) (int64, error)

	UpdateStatus(ctx context.Context, id, status string) error
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead flips every unread record in one filtered update.
	MarkAllRead(ctx context.Context) error

	// Delete permanently removes the record.
	Delete(ctx context.Context, id string) error

	// SoftDelete marks the record deleted and read instead of removing it.
	SoftDelete(ctx context.Context, id string) error
}
