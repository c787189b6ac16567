package repository

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/pkg/supabase"
)

// ContentRepository defines the persistence interface for site CMS blocks.
type ContentRepository interface {
	Save(ctx context.Context, c *model.Content) error
	List(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error)
	GetByID(ctx context.Context, id string) (*model.Content, error)
	Update(ctx context.Context, id string, upd model.ContentUpdate) error
	SoftDelete(ctx context.Context, id string) error
}

const contentResource = "contents"

// SbContentRepository is the external-store implementation of
// ContentRepository.
type SbContentRepository struct {
	store Store
}

// NewSbContentRepository creates a SbContentRepository backed by the given
// store client.
func NewSbContentRepository(store Store) *SbContentRepository {
	return &SbContentRepository{store: store}
}

var _ ContentRepository = (*SbContentRepository)(nil)

func (r *SbContentRepository) Save(ctx context.Context, c *model.Content) error {
	res := r.store.Do(ctx, http.MethodPost, contentResource, c)
	if !res.OK() {
		return &UpstreamError{Op: "save content", Status: res.Status}
	}
	var rows []*model.Content
	if err := json.Unmarshal(res.Data, &rows); err == nil && len(rows) > 0 {
		*c = *rows[0]
	}
	return nil
}

func (r *SbContentRepository) List(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	q := supabase.NewQuery(contentResource).Select("*")
	if opts.Location != "" {
		q.Eq("location", opts.Location)
	}
	if opts.PublishedOnly {
		q.Eq("is_published", "true")
	}
	if !opts.IncludeDeleted {
		q.Eq("is_deleted", "false")
	}
	q.OrderDesc("created_at").Limit(limit).Offset(opts.Offset)

	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "list contents", Status: res.Status}
	}
	var rows []*model.Content
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SbContentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	q := supabase.NewQuery(contentResource).Select("*").Eq("id", id)
	res := r.store.Do(ctx, http.MethodGet, q.String(), nil)
	if !res.OK() {
		return nil, &UpstreamError{Op: "get content", Status: res.Status}
	}
	var rows []*model.Content
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (r *SbContentRepository) Update(ctx context.Context, id string, upd model.ContentUpdate) error {
	q := supabase.NewQuery(contentResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), upd)
	if !res.OK() {
		return &UpstreamError{Op: "update content", Status: res.Status}
	}
	return nil
}

func (r *SbContentRepository) SoftDelete(ctx context.Context, id string) error {
	q := supabase.NewQuery(contentResource).Eq("id", id)
	res := r.store.Do(ctx, http.MethodPatch, q.String(), map[string]any{"is_deleted": true})
	if !res.OK() {
		return &UpstreamError{Op: "soft delete content", Status: res.Status}
	}
	return nil
}
