package client

import (
	"context"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/pkg/logger"
)

// Service provides business operations for the Client catalog.
type Service struct {
	repo Repository
}

// NewService creates a new client service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetByCode(ctx, c.Code); err == nil && existing != nil {
		return apperror.NewConflict("client code already exists").
			WithDetail("code", c.Code)
	} else if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "client created", "id", c.ID, "code", c.Code)
	return nil
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// List retrieves all clients ordered by name.
func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}
