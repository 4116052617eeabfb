// Package ledger_repo provides the PostgreSQL implementation of the
// lot ledger repository.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/ledger"
	"bevstock/internal/infrastructure/storage/postgres"
)

const lotTable = "lots"

var _ ledger.Repository = (*LotRepo)(nil)

// LotRepo implements ledger.Repository.
type LotRepo struct {
	txManager *postgres.TxManager
	cols      []string
}

// NewLotRepo creates a new lot repository.
func NewLotRepo(txManager *postgres.TxManager) *LotRepo {
	return &LotRepo{
		txManager: txManager,
		cols:      postgres.ExtractDBColumns[ledger.Lot](),
	}
}

func (r *LotRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *LotRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.cols...).From(lotTable)
}

// Create inserts a new lot.
func (r *LotRepo) Create(ctx context.Context, lot *ledger.Lot) error {
	data := postgres.StructToMap(lot)

	q := r.builder().
		Insert(lotTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}

	return nil
}

// GetByID retrieves a lot by ID.
func (r *LotRepo) GetByID(ctx context.Context, lotID id.ID) (*ledger.Lot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": lotID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot ledger.Lot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID.String())
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}

	return &lot, nil
}

// ListAvailableForUpdate returns the article's open lots in FIFO order
// and locks the rows with FOR UPDATE. Two concurrent sales of the same
// article serialize on this lock, so the availability check and the
// subsequent decrements see a stable remaining_quantity even under
// read-committed isolation.
func (r *LotRepo) ListAvailableForUpdate(ctx context.Context, articleID id.ID) ([]*ledger.Lot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"article_id": articleID}).
		Where(squirrel.Gt{"remaining_quantity": 0}).
		OrderBy("invoice_date ASC", "created_at ASC").
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lots []*ledger.Lot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lots, sql, args...); err != nil {
		return nil, fmt.Errorf("list lots for update: %w", err)
	}

	return lots, nil
}

// AdjustRemaining adds delta to a lot's remaining quantity. The check
// constraint on the table rejects a result below zero.
func (r *LotRepo) AdjustRemaining(ctx context.Context, lotID id.ID, delta types.Quantity) error {
	q := r.builder().
		Update(lotTable).
		Set("remaining_quantity", squirrel.Expr("remaining_quantity + ?", delta)).
		Where(squirrel.Eq{"id": lotID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust lot %s: %w", lotID, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("lot", lotID.String())
	}

	return nil
}

// ListByArticle returns the article's lots in FIFO order.
func (r *LotRepo) ListByArticle(ctx context.Context, articleID id.ID, onlyAvailable bool) ([]*ledger.Lot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"article_id": articleID}).
		OrderBy("invoice_date ASC", "created_at ASC")

	if onlyAvailable {
		q = q.Where(squirrel.Gt{"remaining_quantity": 0})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lots []*ledger.Lot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lots, sql, args...); err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	return lots, nil
}

// AvailableUnits sums remaining quantity across the article's lots.
func (r *LotRepo) AvailableUnits(ctx context.Context, articleID id.ID) (types.Quantity, error) {
	q := r.builder().
		Select("COALESCE(SUM(remaining_quantity), 0)").
		From(lotTable).
		Where(squirrel.Eq{"article_id": articleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var total types.Quantity
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum available units: %w", err)
	}

	return total, nil
}
