// Package sales_repo provides the PostgreSQL implementation of the
// sale repository.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/domain/sales"
	"bevstock/internal/infrastructure/storage/postgres"
)

const (
	saleTable = "fact_sales"
	lineTable = "fact_sale_lines"
)

var _ sales.Repository = (*SaleRepo)(nil)

// SaleRepo implements sales.Repository. Line inserts go through the
// COPY protocol since a sale routinely carries many lines.
type SaleRepo struct {
	txManager *postgres.TxManager
	batch     *postgres.BatchInserter
	saleCols  []string
	lineCols  []string
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txManager: txManager,
		batch:     postgres.NewBatchInserter(txManager),
		saleCols:  postgres.ExtractDBColumns[sales.Sale](),
		lineCols:  postgres.ExtractDBColumns[sales.Line](),
	}
}

func (r *SaleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// InsertSale inserts the sale header.
func (r *SaleRepo) InsertSale(ctx context.Context, sale *sales.Sale) error {
	data := postgres.StructToMap(sale)

	q := r.builder().
		Insert(saleTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	return nil
}

// UpdateSale updates the sale header.
func (r *SaleRepo) UpdateSale(ctx context.Context, sale *sales.Sale) error {
	data := postgres.StructToMap(sale)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(saleTable).
		SetMap(data).
		Where(squirrel.Eq{"id": sale.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", sale.ID.String())
	}

	return nil
}

// GetSale retrieves a sale header by ID.
func (r *SaleRepo) GetSale(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	q := r.builder().
		Select(r.saleCols...).
		From(saleTable).
		Where(squirrel.Eq{"id": saleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	return &sale, nil
}

// ListSales retrieves sale headers matching the filter, newest first.
func (r *SaleRepo) ListSales(ctx context.Context, filter sales.ListFilter) ([]*sales.Sale, error) {
	q := r.builder().
		Select(r.saleCols...).
		From(saleTable).
		OrderBy("sale_date DESC", "created_at DESC")

	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"sale_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"sale_date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return out, nil
}

// InsertLines bulk-inserts sale lines via COPY.
func (r *SaleRepo) InsertLines(ctx context.Context, lines []*sales.Line) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]any, len(lines))
	for i, line := range lines {
		data := postgres.StructToMap(line)
		row := make([]any, len(r.lineCols))
		for j, col := range r.lineCols {
			row[j] = data[col]
		}
		rows[i] = row
	}

	if _, err := r.batch.CopyFromSlice(ctx, lineTable, r.lineCols, rows); err != nil {
		return fmt.Errorf("insert sale lines: %w", err)
	}

	return nil
}

// DeleteLines removes all lines of a sale.
func (r *SaleRepo) DeleteLines(ctx context.Context, saleID id.ID) error {
	q := r.builder().
		Delete(lineTable).
		Where(squirrel.Eq{"sale_id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete sale lines: %w", err)
	}

	return nil
}

// ListLines retrieves a sale's lines in line order.
func (r *SaleRepo) ListLines(ctx context.Context, saleID id.ID) ([]*sales.Line, error) {
	q := r.builder().
		Select(r.lineCols...).
		From(lineTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []*sales.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}

	return lines, nil
}
