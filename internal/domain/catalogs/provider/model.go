// Package provider provides the Provider catalog: the suppliers
// purchases are sourced from.
package provider

import (
	"context"
	"strings"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/domain"
)

// Provider represents a supplier.
type Provider struct {
	ID   id.ID  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	Category *string `db:"category" json:"category,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Provider.
func New(code, name string) *Provider {
	return &Provider{
		ID:        id.New(),
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks provider invariants.
func (p *Provider) Validate(ctx context.Context) error {
	if p.Code == "" {
		return apperror.NewValidation("provider code is required").
			WithDetail("field", "code")
	}
	if p.Name == "" {
		return apperror.NewValidation("provider name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the persistence contract for providers.
type Repository interface {
	domain.CatalogRepository[*Provider]
}

// Service provides business operations for the Provider catalog.
type Service struct {
	repo Repository
}

// NewService creates a new provider service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new provider.
func (s *Service) Create(ctx context.Context, p *Provider) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetByCode(ctx, p.Code); err == nil && existing != nil {
		return apperror.NewConflict("provider code already exists").
			WithDetail("code", p.Code)
	} else if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	return s.repo.Create(ctx, p)
}

// GetByID retrieves a provider.
func (s *Service) GetByID(ctx context.Context, providerID id.ID) (*Provider, error) {
	return s.repo.GetByID(ctx, providerID)
}

// List retrieves all providers ordered by name.
func (s *Service) List(ctx context.Context) ([]*Provider, error) {
	return s.repo.List(ctx)
}
