package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
)

// Defaults applied to optional submission fields.
const (
	defaultFeedbackEmail = "unknown@local"
	defaultFeedbackType  = "general"
)

// feedbackServiceImpl is the production implementation of FeedbackService.
type feedbackServiceImpl struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService creates a FeedbackService backed by the given repository.
func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackServiceImpl{repo: repo}
}

// Submit normalizes the submission, applies defaults, and stores one new
// record. On success an admin notification is fired best-effort: its
// failure never fails the submission.
func (s *feedbackServiceImpl) Submit(ctx context.Context, fb *model.Feedback) error {
	fb.Name = strings.TrimSpace(fb.Name)
	fb.Message = strings.TrimSpace(fb.Message)
	fb.Email = strings.ToLower(strings.TrimSpace(fb.Email))
	if fb.Email == "" {
		fb.Email = defaultFeedbackEmail
	}
	fb.Phone = strings.TrimSpace(fb.Phone)
	fb.Type = strings.TrimSpace(fb.Type)
	if fb.Type == "" {
		fb.Type = defaultFeedbackType
	}
	fb.Status = model.FeedbackStatusNew
	fb.IsRead = false
	fb.CreatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, fb); err != nil {
		return err
	}

	notifyAdmin("feedback", fb.ID, fb.Email)
	return nil
}

func (s *feedbackServiceImpl) List(ctx context.Context, opts model.ListOptions) ([]*model.Feedback, error) {
	return s.repo.List(ctx, opts)
}

func (s *feedbackServiceImpl) Get(ctx context.Context, id string) (*model.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *feedbackServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *feedbackServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Delete tries each removal strategy in order; the first success wins. A
// store that rejects the hard delete (e.g. a referential constraint) gets
// the soft delete instead. Failure only when every strategy fails.
func (s *feedbackServiceImpl) Delete(ctx context.Context, id string) error {
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

// notifyAdmin records an admin-facing notification for a new submission.
// The notifications feed itself is read straight from the store, so this is
// a log entry only.
func notifyAdmin(kind string, id int64, sender string) {
	slog.Info("admin notification", "type", kind, "id", id, "sender", sender)
}
