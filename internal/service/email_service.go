package service

import (
	"context"
	"errors"

	"github.com/zidalco/backend/internal/model"
)

// ErrDeliveryFailed wraps a failed outbound mail delivery. In the contact
// path this is surfaced to the caller because delivery is the feature's
// primary purpose.
var ErrDeliveryFailed = errors.New("email delivery failed")

// EmailService defines the business logic for contact-email records.
type EmailService interface {
	// Send stores a new email record and attempts one delivery. A failed
	// delivery flips the record's status to "failed" and returns an error
	// wrapping ErrDeliveryFailed. The two writes are not atomic: a crash
	// between them leaves the record marked "sent".
	Send(ctx context.Context, em *model.Email) error

	List(ctx context.Context, opts model.ListOptions) ([]*model.Email, error)
	Get(ctx context.Context, id string) (*model.Email, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkRead(ctx context.Context, id string) error

	// Resend re-attempts delivery of a stored record and patches its
	// status back to "sent" on success.
	Resend(ctx context.Context, id string) error

	// Delete removes a record: hard delete first, soft delete as fallback.
	Delete(ctx context.Context, id string) error
}
