// Package society provides the Society catalog: the legal entities
// sales and purchases are booked under.
package society

import (
	"context"
	"strings"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/domain"
)

// Society represents a legal entity. Exactly one society carries the
// default flag; it is used when a sale or purchase omits the society.
type Society struct {
	ID   id.ID  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	SocietyType *string `db:"society_type" json:"societyType,omitempty"`
	IsDefault   bool    `db:"is_default" json:"isDefault"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Society.
func New(code, name string) *Society {
	return &Society{
		ID:        id.New(),
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks society invariants.
func (s *Society) Validate(ctx context.Context) error {
	if s.Code == "" {
		return apperror.NewValidation("society code is required").
			WithDetail("field", "code")
	}
	if s.Name == "" {
		return apperror.NewValidation("society name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the persistence contract for societies.
type Repository interface {
	domain.CatalogRepository[*Society]

	// GetDefault returns the society flagged as default.
	GetDefault(ctx context.Context) (*Society, error)
}

// Service provides business operations for the Society catalog.
type Service struct {
	repo Repository
}

// NewService creates a new society service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new society.
func (s *Service) Create(ctx context.Context, soc *Society) error {
	if err := soc.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetByCode(ctx, soc.Code); err == nil && existing != nil {
		return apperror.NewConflict("society code already exists").
			WithDetail("code", soc.Code)
	} else if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	return s.repo.Create(ctx, soc)
}

// GetByID retrieves a society.
func (s *Service) GetByID(ctx context.Context, societyID id.ID) (*Society, error) {
	return s.repo.GetByID(ctx, societyID)
}

// GetDefault returns the default society.
func (s *Service) GetDefault(ctx context.Context) (*Society, error) {
	return s.repo.GetDefault(ctx)
}

// List retrieves all societies ordered by name.
func (s *Service) List(ctx context.Context) ([]*Society, error) {
	return s.repo.List(ctx)
}
