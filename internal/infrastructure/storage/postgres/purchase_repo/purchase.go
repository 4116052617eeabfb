// Package purchase_repo provides the PostgreSQL implementation of the
// purchase repository.
package purchase_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/domain/purchasing"
	"bevstock/internal/infrastructure/storage/postgres"
)

const purchaseTable = "fact_purchases"

var _ purchasing.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo implements purchasing.Repository.
type PurchaseRepo struct {
	txManager *postgres.TxManager
	cols      []string
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		txManager: txManager,
		cols:      postgres.ExtractDBColumns[purchasing.Purchase](),
	}
}

func (r *PurchaseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchasing.Purchase) error {
	data := postgres.StructToMap(p)

	q := r.builder().
		Insert(purchaseTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	return nil
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchasing.Purchase, error) {
	q := r.builder().
		Select(r.cols...).
		From(purchaseTable).
		Where(squirrel.Eq{"id": purchaseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchasing.Purchase
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID.String())
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	return &p, nil
}

// ListByInvoice retrieves all purchases booked under an invoice number.
func (r *PurchaseRepo) ListByInvoice(ctx context.Context, invoiceNumber string) ([]*purchasing.Purchase, error) {
	q := r.builder().
		Select(r.cols...).
		From(purchaseTable).
		Where(squirrel.Eq{"invoice_number": invoiceNumber}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*purchasing.Purchase
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases by invoice: %w", err)
	}

	return out, nil
}

// List retrieves purchases, newest first.
func (r *PurchaseRepo) List(ctx context.Context, limit, offset int) ([]*purchasing.Purchase, error) {
	q := r.builder().
		Select(r.cols...).
		From(purchaseTable).
		OrderBy("invoice_date DESC", "created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*purchasing.Purchase
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	return out, nil
}
