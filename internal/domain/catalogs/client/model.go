// Package client provides the Client catalog: the customers sales are
// billed to.
package client

import (
	"context"
	"strings"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/domain"
)

// Client represents a customer.
type Client struct {
	ID   id.ID  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	Title      *string `db:"title" json:"title,omitempty"`
	ClientType *string `db:"client_type" json:"clientType,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Client.
func New(code, name string) *Client {
	return &Client{
		ID:        id.New(),
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if c.Code == "" {
		return apperror.NewValidation("client code is required").
			WithDetail("field", "code")
	}
	if c.Name == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the persistence contract for clients.
type Repository interface {
	domain.CatalogRepository[*Client]
}
