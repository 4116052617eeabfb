// Package tx defines the transaction management contract.
// Domain services depend on this interface; the concrete implementation
// lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs functions inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// If fn returns an error, the transaction is rolled back and no
	// mutation made inside it survives. If fn succeeds, the transaction
	// is committed.
	//
	// Nested calls reuse the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support,
// used by reporting queries that need a consistent snapshot.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
