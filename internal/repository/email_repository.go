package repository

import (
	"context"

	"github.com/zidalco/backend/internal/model"
)

// EmailRepository defines the persistence interface for contact-email
// records. The surface mirrors FeedbackRepository; the two resources share
// the triage lifecycle.
type EmailRepository interface {
	Save(ctx context.Context, em *model.Email) error
	List(ctx context.Context, opts model.ListOptions) ([]*model.Email, error)
	GetByID(ctx context.Context, id string) (*model.Email, error)
	ListUnread(ctx context.Context, limit int) ([]*model.Email, error)
	Count(ctx context.Context, unreadOnly bool) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
}
