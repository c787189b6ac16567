package repository

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/pkg/supabase"
)

const feedbackResource = "feedback"

// SbFeedbackRepository is the external-store implementation of
// FeedbackRepository.
type SbFeedbackRepository struct {
	store Store
}

// NewSbFeedbackRepository creates a SbFeedbackRepository backed by the
// given store client.
func NewSbFeedbackRepository(store Store) *SbFeedbackRepository {
	return &SbFeedbackRepository{store: store}
}

var _ FeedbackRepository = (*SbFeedbackRepository)(nil)

func (r *SbFeedbackRepository) Save(ctx context.Context, fb *model.Feedback) error {
	res := r.store.Do(ctx, http.MethodPost, feedbackResource, fb)
	if !res.OK() {
		return &UpstreamError{Op: "save feedback", Status: res.Status}
	}
	var rows []*model.Feedback
	if err := json.Unmarshal(res.Data, &rows); err == nil && len(rows) > 0 {
		*fb = *rows[0]
	}
	return nil
}

func (r *SbFeedbackRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.Feedback, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	q := supabase.NewQuery(feedbackResource).Select("*")
	if opts.Status != "" {
		// An explicit filter wins: deleted records become reachable.
		q.Eq("status", opts.Status)
	} else {
		q.Neq("status", model.StatusDeleted)
	}
	q.OrderDesc("created_at").Limit(limit).Offset(opts.Offset)

	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "list feedback", Status: res.Status}
	}
	var rows []*model.Feedback
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SbFeedbackRepository) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	q := supabase.NewQuery(feedbackResource).Select("*").Eq("id", id)
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "get feedback", Status: res.Status}
	}
	var rows []*model.Feedback
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (r *SbFeedbackRepository) ListUnread(ctx context.Context, limit int) ([]*model.Feedback, error) {
	q := supabase.NewQuery(feedbackResource).Select("*").
		Eq("is_read", "false").
		Neq("status", model.StatusDeleted).
		OrderDesc("created_at").
		Limit(limit)
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "list unread feedback", Status: res.Status}
	}
	var rows []*model.Feedback
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SbFeedbackRepository) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	q := supabase.NewQuery(feedbackResource).Select("count").Neq("status", model.StatusDeleted)
	if unreadOnly {
		q.Eq("is_read", "false")
	}
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return 0, &UpstreamError{Op: "count feedback", Status: res.Status}
	}
	return decodeCount(res.Data)
}

func (r *SbFeedbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	q := supabase.NewQuery(feedbackResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"status": status})
	if !res.OK() {
		return &UpstreamError{Op: "update feedback status", Status: res.Status}
	}
	return nil
}

func (r *SbFeedbackRepository) MarkRead(ctx context.Context, id string) error {
	q := supabase.NewQuery(feedbackResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"is_read": true})
	if !res.OK() {
		return &UpstreamError{Op: "mark feedback read", Status: res.Status}
	}
	return nil
}

func (r *SbFeedbackRepository) MarkAllRead(ctx context.Context) error {
	q := supabase.NewQuery(feedbackResource).Eq("is_read", "false")
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"is_read": true})
	if !res.OK() {
		return &UpstreamError{Op: "mark all feedback read", Status: res.Status}
	}
	return nil
}

func (r *SbFeedbackRepository) Delete(ctx context.Context, id string) error {
	q := supabase.NewQuery(feedbackResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodDelete, q.String(), nil)
	if !res.OK() {
		return &UpstreamError{Op: "delete feedback", Status: res.Status}
	}
	return nil
}

func (r *SbFeedbackRepository) SoftDelete(ctx context.Context, id string) error {
	q := supabase.NewQuery(feedbackResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{
		"status":  model.StatusDeleted,
		"is_read": true,
	})
	if !res.OK() {
		return &UpstreamError{Op: "soft delete feedback", Status: res.Status}
	}
	return nil
}

// decodeCount parses the store's count projection, a one-row array like
// [{"count": 42}].
func decodeCount(data json.RawMessage) (int64, error) {
	var rows []struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}
