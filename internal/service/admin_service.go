package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/zidalco/backend/internal/mailer"
	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
)

const (
	// notificationFetchLimit is how many unread records are pulled per
	// resource when building the feed.
	notificationFetchLimit = 10
	// notificationFeedCap bounds the merged feed.
	notificationFeedCap = 20
	// notificationPreviewRunes is the preview length of a notification message.
	notificationPreviewRunes = 100
)

// AdminService aggregates the admin dashboard operations: counters, the
// notifications feed, replies, and read-state management.
type AdminService interface {
	// DashboardStats runs the four count queries concurrently. The counts
	// carry no cross-consistency guarantee.
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)

	// Notifications rebuilds the merged unread feed from scratch on every
	// call: newest first, capped at 20 items.
	Notifications(ctx context.Context) ([]*model.Notification, error)

	// ReplyFeedback appends a reply to a feedback record and marks the
	// parent replied. Returns repository.ErrNotFound for a missing parent.
	ReplyFeedback(ctx context.Context, feedbackID int64, message string) error

	// ReplyEmail does the same for an email record and additionally
	// attempts an outbound send to the original sender. Delivery is
	// independent of reply persistence: a failed send rolls nothing back.
	ReplyEmail(ctx context.Context, emailID int64, message string) error

	// MarkRead flips one record's read flag; kind is "feedback" or "email".
	MarkRead(ctx context.Context, kind, id string) error

	// MarkAllRead issues one unconditional bulk update per resource.
	MarkAllRead(ctx context.Context) error
}

// adminServiceImpl is the production implementation of AdminService.
type adminServiceImpl struct {
	feedback  repository.FeedbackRepository
	emails    repository.EmailRepository
	replies   repository.ReplyRepository
	mailer    mailer.Mailer
	replyFrom string
}

// NewAdminService creates an AdminService. replyFrom is the address admin
// replies are sent from; when empty a site default is used.
func NewAdminService(
	feedback repository.FeedbackRepository,
	emails repository.EmailRepository,
	replies repository.ReplyRepository,
	m mailer.Mailer,
	replyFrom string,
) AdminService {
	if replyFrom == "" {
		replyFrom = "no-reply@zidalco.com"
	}
	return &adminServiceImpl{
		feedback:  feedback,
		emails:    emails,
		replies:   replies,
		mailer:    m,
		replyFrom: replyFrom,
	}
}

func (s *adminServiceImpl) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	var wg sync.WaitGroup
	errs := make([]error, 4)

	count := func(i int, dst *int64, fn func(context.Context, bool) (int64, error), unreadOnly bool) {
		defer wg.Done()
		n, err := fn(ctx, unreadOnly)
		if err != nil {
			errs[i] = err
			return
		}
		*dst = n
	}

	wg.Add(4)
	go count(0, &stats.TotalFeedback, s.feedback.Count, false)
	go count(1, &stats.TotalEmails, s.emails.Count, false)
	go count(2, &stats.UnreadFeedback, s.feedback.Count, true)
	go count(3, &stats.UnreadEmails, s.emails.Count, true)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *adminServiceImpl) Notifications(ctx context.Context) ([]*model.Notification, error) {
	var (
		wg    sync.WaitGroup
		fbs   []*model.Feedback
		ems   []*model.Email
		fbErr error
		emErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fbs, fbErr = s.feedback.ListUnread(ctx, notificationFetchLimit)
	}()
	go func() {
		defer wg.Done()
		ems, emErr = s.emails.ListUnread(ctx, notificationFetchLimit)
	}()
	wg.Wait()

	if err := errors.Join(fbErr, emErr); err != nil {
		return nil, err
	}

	feed := make([]*model.Notification, 0, len(fbs)+len(ems))
	for _, fb := range fbs {
		feed = append(feed, &model.Notification{
			Type:    "feedback",
			ID:      fb.ID,
			Title:   "New feedback from " + fb.Name,
			Message: preview(fb.Message),
			Time:    fb.CreatedAt,
			Data:    fb,
		})
	}
	for _, em := range ems {
		feed = append(feed, &model.Notification{
			Type:    "email",
			ID:      em.ID,
			Title:   "New email from " + em.SenderName,
			Message: preview(em.Message),
			Time:    em.CreatedAt,
			Data:    em,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Time.After(feed[j].Time)
	})
	if len(feed) > notificationFeedCap {
		feed = feed[:notificationFeedCap]
	}
	return feed, nil
}

// replyTarget is the capability set for one reply kind, selected once at
// the handler boundary instead of re-branching on the kind throughout.
type replyTarget struct {
	// fetch confirms the parent exists; for emails it returns the sender
	// address the reply should be delivered to.
	fetch       func(ctx context.Context, id string) (notifyAddr string, err error)
	saveReply   func(ctx context.Context, parentID int64, message string) error
	patchStatus func(ctx context.Context, id string) error
}

func (s *adminServiceImpl) ReplyFeedback(ctx context.Context, feedbackID int64, message string) error {
	return s.reply(ctx, replyTarget{
		fetch: func(ctx context.Context, id string) (string, error) {
			_, err := s.feedback.GetByID(ctx, id)
			return "", err
		},
		saveReply: func(ctx context.Context, parentID int64, msg string) error {
			return s.replies.SaveFeedbackReply(ctx, &model.FeedbackReply{
				FeedbackID:   parentID,
				ReplyMessage: msg,
				CreatedAt:    time.Now().UTC(),
			})
		},
		patchStatus: func(ctx context.Context, id string) error {
			return s.feedback.UpdateStatus(ctx, id, model.FeedbackStatusReplied)
		},
	}, feedbackID, message)
}

func (s *adminServiceImpl) ReplyEmail(ctx context.Context, emailID int64, message string) error {
	return s.reply(ctx, replyTarget{
		fetch: func(ctx context.Context, id string) (string, error) {
			em, err := s.emails.GetByID(ctx, id)
			if err != nil {
				return "", err
			}
			return em.SenderEmail, nil
		},
		saveReply: func(ctx context.Context, parentID int64, msg string) error {
			return s.replies.SaveEmailReply(ctx, &model.EmailReply{
				EmailID:      parentID,
				ReplyMessage: msg,
				CreatedAt:    time.Now().UTC(),
			})
		},
		patchStatus: func(ctx context.Context, id string) error {
			return s.emails.UpdateStatus(ctx, id, model.EmailStatusReplied)
		},
	}, emailID, message)
}

// reply runs the shared reply flow. Only the reply save is load-bearing:
// the status patch and outbound delivery are best-effort afterwards.
func (s *adminServiceImpl) reply(ctx context.Context, target replyTarget, parentID int64, message string) error {
	id := strconv.FormatInt(parentID, 10)

	notifyAddr, err := target.fetch(ctx, id)
	if err != nil {
		return err
	}

	if err := target.saveReply(ctx, parentID, message); err != nil {
		return err
	}

	if err := target.patchStatus(ctx, id); err != nil {
		slog.Warn("reply saved but status patch failed", "id", parentID, "error", err)
	}

	if notifyAddr != "" {
		_, err := s.mailer.Send(ctx, mailer.Message{
			SenderName:     "Zidalco Admin",
			SenderEmail:    s.replyFrom,
			Body:           message,
			RecipientEmail: notifyAddr,
			Subject:        "Reply to your message - Zidalco",
		})
		if err != nil {
			slog.Warn("reply saved but delivery failed", "id", parentID, "error", err)
		}
	}
	return nil
}

func (s *adminServiceImpl) MarkRead(ctx context.Context, kind, id string) error {
	switch kind {
	case "feedback":
		return s.feedback.MarkRead(ctx, id)
	case "email":
		return s.emails.MarkRead(ctx, id)
	default:
		return fmt.Errorf("unknown resource kind %q", kind)
	}
}

func (s *adminServiceImpl) MarkAllRead(ctx context.Context) error {
	var wg sync.WaitGroup
	var fbErr, emErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		fbErr = s.feedback.MarkAllRead(ctx)
	}()
	go func() {
		defer wg.Done()
		emErr = s.emails.MarkAllRead(ctx)
	}()
	wg.Wait()

	return errors.Join(fbErr, emErr)
}

// preview truncates a message to its first notificationPreviewRunes runes.
func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= notificationPreviewRunes {
		return message
	}
	return string(runes[:notificationPreviewRunes]) + "..."
}
