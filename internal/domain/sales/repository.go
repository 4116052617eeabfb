package sales

import (
	"context"
	"time"

	"bevstock/internal/core/id"
)

// Repository is the persistence port for sale headers and lines. All
// mutating methods run inside the caller's transaction.
type Repository interface {
	InsertSale(ctx context.Context, sale *Sale) error
	UpdateSale(ctx context.Context, sale *Sale) error
	GetSale(ctx context.Context, saleID id.ID) (*Sale, error)
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)

	InsertLines(ctx context.Context, lines []*Line) error
	DeleteLines(ctx context.Context, saleID id.ID) error
	ListLines(ctx context.Context, saleID id.ID) ([]*Line, error)
}

// Auditor records an audit trail entry inside the current transaction.
// Wired to the storage layer's audit log; kept as a port so the engine
// stays storage-agnostic.
type Auditor interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action string, payload any) error
}

// auditPayload is the snapshot written to the audit log on commit.
type auditPayload struct {
	Sale  *Sale     `json:"sale"`
	Lines []*Line   `json:"lines"`
	At    time.Time `json:"at"`
}
