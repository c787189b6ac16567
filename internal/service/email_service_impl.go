package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zidalco/backend/internal/mailer"
	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
)

// emailServiceImpl is the production implementation of EmailService.
type emailServiceImpl struct {
	repo   repository.EmailRepository
	mailer mailer.Mailer
}

// NewEmailService creates an EmailService backed by the given repository
// and mail transport.
func NewEmailService(repo repository.EmailRepository, m mailer.Mailer) EmailService {
	return &emailServiceImpl{repo: repo, mailer: m}
}

// Send stores the record with status "sent", then performs one delivery
// attempt. On delivery failure the stored record is patched to "failed"
// and the error is surfaced — the one place a secondary store write is
// chained off a primary one.
func (s *emailServiceImpl) Send(ctx context.Context, em *model.Email) error {
	em.SenderName = strings.TrimSpace(em.SenderName)
	em.SenderEmail = strings.ToLower(strings.TrimSpace(em.SenderEmail))
	em.SenderPhone = strings.TrimSpace(em.SenderPhone)
	em.Message = strings.TrimSpace(em.Message)
	em.RecipientEmail = strings.ToLower(strings.TrimSpace(em.RecipientEmail))
	em.Status = model.EmailStatusSent
	em.IsRead = false
	em.CreatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, em); err != nil {
		return err
	}

	if _, err := s.mailer.Send(ctx, deliveryMessage(em)); err != nil {
		id := strconv.FormatInt(em.ID, 10)
		if patchErr := s.repo.UpdateStatus(ctx, id, model.EmailStatusFailed); patchErr != nil {
			// The record stays marked "sent" despite undelivered mail.
			slog.Error("failed to flag undelivered email", "id", em.ID, "error", patchErr)
		} else {
			em.Status = model.EmailStatusFailed
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	notifyAdmin("email", em.ID, em.SenderEmail)
	return nil
}

func (s *emailServiceImpl) List(ctx context.Context, opts model.ListOptions) ([]*model.Email, error) {
	return s.repo.List(ctx, opts)
}

func (s *emailServiceImpl) Get(ctx context.Context, id string) (*model.Email, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *emailServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *emailServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Resend re-attempts delivery of an existing record.
func (s *emailServiceImpl) Resend(ctx context.Context, id string) error {
	em, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.mailer.Send(ctx, deliveryMessage(em)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return s.repo.UpdateStatus(ctx, id, model.EmailStatusSent)
}

// Delete mirrors the feedback removal policy: hard delete, then soft
// delete, first success short-circuits.
func (s *emailServiceImpl) Delete(ctx context.Context, id string) error {
	strategies := []func(context.Context, string) error{
		s.repo.Delete,
		s.repo.SoftDelete,
	}

	var errs []error
	for _, attempt := range strategies {
		err := attempt(ctx, id)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// deliveryMessage builds the outbound mail for a contact-email record.
func deliveryMessage(em *model.Email) mailer.Message {
	return mailer.Message{
		SenderName:     em.SenderName,
		SenderEmail:    em.SenderEmail,
		SenderPhone:    em.SenderPhone,
		Body:           em.Message,
		RecipientEmail: em.RecipientEmail,
		Subject:        "New message from Zidalco website - " + em.SenderName,
	}
}
