package article

import (
	"context"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/pkg/logger"
)

// Service provides business operations for the Article catalog.
type Service struct {
	repo Repository
}

// NewService creates a new article service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new article.
func (s *Service) Create(ctx context.Context, a *Article) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetByCode(ctx, a.Code); err == nil && existing != nil {
		return apperror.NewConflict("article code already exists").
			WithDetail("code", a.Code)
	} else if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	logger.Info(ctx, "article created", "id", a.ID, "code", a.Code)
	return nil
}

// UpdateDescriptive changes the editable fields of an article. Code and
// units-per-case are frozen: lots and sale lines depend on them.
func (s *Service) UpdateDescriptive(ctx context.Context, articleID id.ID, upd DescriptiveUpdate) (*Article, error) {
	a, err := s.repo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Unit != nil {
		a.Unit = *upd.Unit
	}
	if upd.Category != nil {
		a.Category = upd.Category
	}
	if upd.Subcategory != nil {
		a.Subcategory = upd.Subcategory
	}
	if upd.ProductType != nil {
		a.ProductType = upd.ProductType
	}

	if err := a.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// DescriptiveUpdate carries the mutable article fields; nil means keep.
type DescriptiveUpdate struct {
	Description *string
	Unit        *string
	Category    *string
	Subcategory *string
	ProductType *string
}

// GetByID retrieves an article.
func (s *Service) GetByID(ctx context.Context, articleID id.ID) (*Article, error) {
	return s.repo.GetByID(ctx, articleID)
}

// List retrieves all articles ordered by description.
func (s *Service) List(ctx context.Context) ([]*Article, error) {
	return s.repo.List(ctx)
}
