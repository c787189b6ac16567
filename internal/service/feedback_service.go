package service

import (
	"context"

	"github.com/zidalco/backend/internal/model"
)

// FeedbackService defines the business logic for feedback records.
type FeedbackService interface {
	// Submit stores a new feedback record. Defaults and timestamps are
	// populated by the implementation.
	Submit(ctx context.Context, fb *model.Feedback) error

	// List returns feedback according to the given options.
	List(ctx context.Context, opts model.ListOptions) ([]*model.Feedback, error)

	// Get returns one record or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*model.Feedback, error)

	UpdateStatus(ctx context.Context, id, status string) error
	MarkRead(ctx context.Context, id string) error

	// Delete removes a record: hard delete first, soft delete as fallback.
	Delete(ctx context.Context, id string) error
}
