package service

import (
	"context"
	"errors"
	"testing"

	"github.com/zidalco/backend/internal/mailer"
	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mocks
// ---------------------------------------------------------------------------

type mockEmailRepository struct {
	saveFunc         func(ctx context.Context, em *model.Email) error
	listFunc         func(ctx context.Context, opts model.ListOptions) ([]*model.Email, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Email, error)
	listUnreadFunc   func(ctx context.Context, limit int) ([]*model.Email, error)
	countFunc        func(ctx context.Context, unreadOnly bool) (int64, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	markReadFunc     func(ctx context.Context, id string) error
	markAllReadFunc  func(ctx context.Context) error
	deleteFunc       func(ctx context.Context, id string) error
	softDeleteFunc   func(ctx context.Context, id string) error
}

func (m *mockEmailRepository) Save(ctx context.Context, em *model.Email) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, em)
	}
	return nil
}

func (m *mockEmailRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.Email, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockEmailRepository) GetByID(ctx context.Context, id string) (*model.Email, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Email{ID: 1}, nil
}

func (m *mockEmailRepository) ListUnread(ctx context.Context, limit int) ([]*model.Email, error) {
	if m.listUnreadFunc != nil {
		return m.listUnreadFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEmailRepository) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, unreadOnly)
	}
	return 0, nil
}

func (m *mockEmailRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockEmailRepository) MarkRead(ctx context.Context, id string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil
}

func (m *mockEmailRepository) MarkAllRead(ctx context.Context) error {
	if m.markAllReadFunc != nil {
		return m.markAllReadFunc(ctx)
	}
	return nil
}

func (m *mockEmailRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockEmailRepository) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, msg mailer.Message) (bool, error)
	sent     []mailer.Message
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) (bool, error) {
	m.sent = append(m.sent, msg)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Send
// ---------------------------------------------------------------------------

func TestEmailSend_StoresRecordThenDelivers(t *testing.T) {
	var saved *model.Email
	repo := &mockEmailRepository{
		saveFunc: func(ctx context.Context, em *model.Email) error {
			em.ID = 11
			saved = em
			return nil
		},
	}
	mail := &mockMailer{}
	svc := NewEmailService(repo, mail)

	em := &model.Email{
		SenderName:     "Ada",
		SenderEmail:    "ADA@Example.com",
		SenderPhone:    "123",
		Message:        "hello",
		RecipientEmail: "Info@Zidalco.com",
	}
	if err := svc.Send(context.Background(), em); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.Status != model.EmailStatusSent {
		t.Errorf("expected status=sent at save time, got %q", saved.Status)
	}
	if saved.SenderEmail != "ada@example.com" || saved.RecipientEmail != "info@zidalco.com" {
		t.Errorf("expected normalized addresses, got %q / %q", saved.SenderEmail, saved.RecipientEmail)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected one delivery attempt, got %d", len(mail.sent))
	}
	if mail.sent[0].RecipientEmail != "info@zidalco.com" {
		t.Errorf("unexpected delivery target %q", mail.sent[0].RecipientEmail)
	}
}

func TestEmailSend_DeliveryFailureFlagsRecord(t *testing.T) {
	var patchedID, patchedStatus string
	repo := &mockEmailRepository{
		saveFunc: func(ctx context.Context, em *model.Email) error {
			em.ID = 7
			return nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			patchedID, patchedStatus = id, status
			return nil
		},
	}
	mail := &mockMailer{
		sendFunc: func(ctx context.Context, msg mailer.Message) (bool, error) {
			return false, errors.New("relay refused")
		},
	}
	svc := NewEmailService(repo, mail)

	em := &model.Email{SenderName: "A", SenderEmail: "a@b.co", Message: "m", RecipientEmail: "c@d.co"}
	err := svc.Send(context.Background(), em)
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if patchedID != "7" || patchedStatus != model.EmailStatusFailed {
		t.Errorf("expected record 7 patched to failed, got %q/%q", patchedID, patchedStatus)
	}
	if em.Status != model.EmailStatusFailed {
		t.Errorf("expected in-memory status updated, got %q", em.Status)
	}
}

// A failing status patch still surfaces the delivery error; the record
// stays marked "sent" in the store.
func TestEmailSend_PatchFailureStillSurfacesDeliveryError(t *testing.T) {
	repo := &mockEmailRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			return errors.New("store down")
		},
	}
	mail := &mockMailer{
		sendFunc: func(ctx context.Context, msg mailer.Message) (bool, error) {
			return false, errors.New("relay refused")
		},
	}
	svc := NewEmailService(repo, mail)

	em := &model.Email{SenderName: "A", SenderEmail: "a@b.co", Message: "m", RecipientEmail: "c@d.co"}
	err := svc.Send(context.Background(), em)
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if em.Status != model.EmailStatusSent {
		t.Errorf("record must keep its stored status when the patch fails, got %q", em.Status)
	}
}

func TestEmailSend_SaveFailureSkipsDelivery(t *testing.T) {
	repo := &mockEmailRepository{
		saveFunc: func(ctx context.Context, em *model.Email) error {
			return errors.New("store down")
		},
	}
	mail := &mockMailer{}
	svc := NewEmailService(repo, mail)

	em := &model.Email{SenderName: "A", SenderEmail: "a@b.co", Message: "m", RecipientEmail: "c@d.co"}
	if err := svc.Send(context.Background(), em); err == nil {
		t.Fatal("expected error")
	}
	if len(mail.sent) != 0 {
		t.Error("no delivery may happen when the record was not stored")
	}
}

// ---------------------------------------------------------------------------
// Resend
// ---------------------------------------------------------------------------

func TestEmailResend_NotFoundPropagates(t *testing.T) {
	repo := &mockEmailRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Email, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewEmailService(repo, &mockMailer{})

	if err := svc.Resend(context.Background(), "99"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailResend_SuccessRestoresSentStatus(t *testing.T) {
	var patchedStatus string
	repo := &mockEmailRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Email, error) {
			return &model.Email{ID: 3, Status: model.EmailStatusFailed, RecipientEmail: "c@d.co"}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			patchedStatus = status
			return nil
		},
	}
	svc := NewEmailService(repo, &mockMailer{})

	if err := svc.Resend(context.Background(), "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patchedStatus != model.EmailStatusSent {
		t.Errorf("expected status restored to sent, got %q", patchedStatus)
	}
}
