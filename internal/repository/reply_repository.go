package repository

import (
	"context"
	"net/http"

	"github.com/zidalco/backend/internal/model"
)

// ReplyRepository appends admin replies. Replies are never updated or
// deleted by this service.
type ReplyRepository interface {
	SaveFeedbackReply(ctx context.Context, reply *model.FeedbackReply) error
	SaveEmailReply(ctx context.Context, reply *model.EmailReply) error
}

// SbReplyRepository is the external-store implementation of ReplyRepository.
type SbReplyRepository struct {
	store Store
}

// NewSbReplyRepository creates a SbReplyRepository backed by the given
// store client.
func NewSbReplyRepository(store Store) *SbReplyRepository {
	return &SbReplyRepository{store: store}
}

var _ ReplyRepository = (*SbReplyRepository)(nil)

func (r *SbReplyRepository) SaveFeedbackReply(ctx context.Context, reply *model.FeedbackReply) error {
	res := r.store.Do(ctx, http.MethodPost, "feedback_replies", reply)
	if !res.OK() {
		return &UpstreamError{Op: "save feedback reply", Status: res.Status}
	}
	return nil
}

func (r *SbReplyRepository) SaveEmailReply(ctx context.Context, reply *model.EmailReply) error {
	res := r.store.Do(ctx, http.MethodPost, "email_replies", reply)
	if !res.OK() {
		return &UpstreamError{Op: "save email reply", Status: res.Status}
	}
	return nil
}
