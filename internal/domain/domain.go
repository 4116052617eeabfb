// Package domain holds contracts shared by the domain packages.
package domain

import (
	"context"

	"bevstock/internal/core/id"
)

// CatalogRepository is the common persistence contract for dimension-like
// catalog entities (articles, clients, providers, societies).
type CatalogRepository[T any] interface {
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)
	List(ctx context.Context) ([]T, error)
}

// ListResult wraps paged query results.
type ListResult[T any] struct {
	Items      []T
	TotalCount int64
	Limit      int
	Offset     int
}
