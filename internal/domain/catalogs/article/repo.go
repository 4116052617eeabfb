package article

import (
	"bevstock/internal/domain"
)

// Repository defines the persistence contract for articles.
type Repository interface {
	domain.CatalogRepository[*Article]
}
