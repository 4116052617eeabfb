package ledger

import (
	"context"

	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

// Repository is the persistence port for lots. Mutating methods are
// expected to run inside the caller's transaction.
type Repository interface {
	Create(ctx context.Context, lot *Lot) error
	GetByID(ctx context.Context, lotID id.ID) (*Lot, error)

	// ListAvailableForUpdate returns the article's lots with remaining
	// quantity > 0 in FIFO order (invoice date ascending, creation
	// order breaking ties) and locks them against concurrent
	// consumption for the duration of the transaction.
	ListAvailableForUpdate(ctx context.Context, articleID id.ID) ([]*Lot, error)

	// AdjustRemaining adds delta to the lot's remaining quantity.
	// Negative delta consumes, positive delta restores.
	AdjustRemaining(ctx context.Context, lotID id.ID, delta types.Quantity) error

	// ListByArticle returns the article's lots in FIFO order. When
	// onlyAvailable is set, exhausted lots are skipped.
	ListByArticle(ctx context.Context, articleID id.ID, onlyAvailable bool) ([]*Lot, error)

	// AvailableUnits sums remaining quantity across the article's lots.
	AvailableUnits(ctx context.Context, articleID id.ID) (types.Quantity, error)
}
