package repository

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/pkg/supabase"
)

const emailResource = "emails"

// SbEmailRepository is the external-store implementation of EmailRepository.
type SbEmailRepository struct {
	store Store
}

// NewSbEmailRepository creates a SbEmailRepository backed by the given
// store client.
func NewSbEmailRepository(store Store) *SbEmailRepository {
	return &SbEmailRepository{store: store}
}

var _ EmailRepository = (*SbEmailRepository)(nil)

func (r *SbEmailRepository) Save(ctx context.Context, em *model.Email) error {
	res := r.store.Do(ctx, http.MethodPost, emailResource, em)
	if !res.OK() {
		return &UpstreamError{Op: "save email", Status: res.Status}
	}
	var rows []*model.Email
	if err := json.Unmarshal(res.Data, &rows); err == nil && len(rows) > 0 {
		*em = *rows[0]
	}
	return nil
}

func (r *SbEmailRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.Email, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	q := supabase.NewQuery(emailResource).Select("*")
	if opts.Status != "" {
		q.Eq("status", opts.Status)
	} else {
		q.Neq("status", model.StatusDeleted)
	}
	q.OrderDesc("created_at").Limit(limit).Offset(opts.Offset)

	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "list emails", Status: res.Status}
	}
	var rows []*model.Email
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SbEmailRepository) GetByID(ctx context.Context, id string) (*model.Email, error) {
	q := supabase.NewQuery(emailResource).Select("*").Eq("id", id)
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "get email", Status: res.Status}
	}
	var rows []*model.Email
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (r *SbEmailRepository) ListUnread(ctx context.Context, limit int) ([]*model.Email, error) {
	q := supabase.NewQuery(emailResource).Select("*").
		Eq("is_read", "false").
		Neq("status", model.StatusDeleted).
		OrderDesc("created_at").
		Limit(limit)
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "list unread emails", Status: res.Status}
	}
	var rows []*model.Email
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SbEmailRepository) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	q := supabase.NewQuery(emailResource).Select("count").Neq("status", model.StatusDeleted)
	if unreadOnly {
		q.Eq("is_read", "false")
	}
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return 0, &UpstreamError{Op: "count emails", Status: res.Status}
	}
	return decodeCount(res.Data)
}

func (r *SbEmailRepository) UpdateStatus(ctx context.Context, id, status string) error {
	q := supabase.NewQuery(emailResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"status": status})
	if !res.OK() {
		return &UpstreamError{Op: "update email status", Status: res.Status}
	}
	return nil
}

func (r *SbEmailRepository) MarkRead(ctx context.Context, id string) error {
	q := supabase.NewQuery(emailResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"is_read": true})
	if !res.OK() {
		return &UpstreamError{Op: "mark email read", Status: res.Status}
	}
	return nil
}

func (r *SbEmailRepository) MarkAllRead(ctx context.Context) error {
	q := supabase.NewQuery(emailResource).Eq("is_read", "false")
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"is_read": true})
	if !res.OK() {
		return &UpstreamError{Op: "mark all emails read", Status: res.Status}
	}
	return nil
}

func (r *SbEmailRepository) Delete(ctx context.Context, id string) error {
	q := supabase.NewQuery(emailResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodDelete, q.String(), nil)
	if !res.OK() {
		return &UpstreamError{Op: "delete email", Status: res.Status}
	}
	return nil
}

func (r *SbEmailRepository) SoftDelete(ctx context.Context, id string) error {
	q := supabase.NewQuery(emailResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{
		"status":  model.StatusDeleted,
		"is_read": true,
	})
	if !res.OK() {
		return &UpstreamError{Op: "soft delete email", Status: res.Status}
	}
	return nil
}
