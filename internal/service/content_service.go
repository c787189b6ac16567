package service

import (
	"context"
	"time"

	"github.com/zidalco/backend/internal/model"
	"github.com/zidalco/backend/internal/repository"
)

// ContentService defines the business logic for site CMS blocks. Content
// follows the same soft-delete shape as feedback and emails.
type ContentService interface {
	Create(ctx context.Context, c *model.Content) error
	List(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error)
	Get(ctx context.Context, id string) (*model.Content, error)
	Update(ctx context.Context, id string, upd model.ContentUpdate) error

	// Delete soft-deletes the block; the image file, if any, stays on disk.
	Delete(ctx context.Context, id string) error
}

type contentServiceImpl struct {
	repo repository.ContentRepository
}

// NewContentService creates a ContentService backed by the given repository.
func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentServiceImpl{repo: repo}
}

func (s *contentServiceImpl) Create(ctx context.Context, c *model.Content) error {
	c.IsDeleted = false
	c.CreatedAt = time.Now().UTC()
	return s.repo.Save(ctx, c)
}

func (s *contentServiceImpl) List(ctx context.Context, opts model.ContentListOptions) ([]*model.Content, error) {
	return s.repo.List(ctx, opts)
}

func (s *contentServiceImpl) Get(ctx context.Context, id string) (*model.Content, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contentServiceImpl) Update(ctx context.Context, id string, upd model.ContentUpdate) error {
	return s.repo.Update(ctx, id, upd)
}

func (s *contentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
