// Package report_repo provides the PostgreSQL implementation of the
// reporting queries. These are raw aggregate reads; the query builder
// adds nothing here.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/reports"
	"bevstock/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

const stockOverviewSQL = `
SELECT
    a.id          AS article_id,
    a.code        AS code,
    a.description AS description,
    a.unit        AS unit,
    a.category    AS category,
    a.units_per_case AS units_per_case,
    COALESCE(SUM(l.remaining_quantity), 0) AS available_units,
    COUNT(l.id) FILTER (WHERE l.remaining_quantity > 0) AS lot_count
FROM cat_articles a
LEFT JOIN lots l ON l.article_id = a.id
GROUP BY a.id, a.code, a.description, a.unit, a.category, a.units_per_case
ORDER BY a.description ASC`

// StockOverview returns every article's aggregate stock position.
func (r *ReportRepo) StockOverview(ctx context.Context) ([]*reports.StockRow, error) {
	var rows []*reports.StockRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, stockOverviewSQL); err != nil {
		return nil, fmt.Errorf("stock overview: %w", err)
	}
	return rows, nil
}

const articleStockSQL = `
SELECT
    a.id          AS article_id,
    a.code        AS code,
    a.description AS description,
    a.unit        AS unit,
    a.category    AS category,
    a.units_per_case AS units_per_case,
    COALESCE(SUM(l.remaining_quantity), 0) AS available_units,
    COUNT(l.id) FILTER (WHERE l.remaining_quantity > 0) AS lot_count
FROM cat_articles a
LEFT JOIN lots l ON l.article_id = a.id
WHERE a.id = $1
GROUP BY a.id, a.code, a.description, a.unit, a.category, a.units_per_case`

// ArticleStock returns one article's aggregate stock position.
func (r *ReportRepo) ArticleStock(ctx context.Context, articleID id.ID) (*reports.StockRow, error) {
	var row reports.StockRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, articleStockSQL, articleID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("article", articleID.String())
		}
		return nil, fmt.Errorf("article stock: %w", err)
	}
	return &row, nil
}

const lotDetailSQL = `
SELECT
    l.id             AS lot_id,
    COALESCE(s.name, '') AS society_name,
    l.invoice_date   AS invoice_date,
    a.code           AS article_code,
    a.description    AS description,
    l.provider_name  AS provider_name,
    l.invoice_number AS invoice_number,
    l.remaining_quantity AS available_units,
    l.unit_cost      AS unit_cost,
    a.unit           AS unit,
    a.units_per_case AS units_per_case,
    l.lot_number     AS lot_number
FROM lots l
JOIN cat_articles a ON a.id = l.article_id
LEFT JOIN cat_societies s ON s.id = l.society_id
WHERE l.article_id = $1
  AND l.remaining_quantity > 0
ORDER BY l.invoice_date ASC, l.created_at ASC`

// LotDetail returns an article's open lots in consumption order.
func (r *ReportRepo) LotDetail(ctx context.Context, articleID id.ID) ([]*reports.LotDetailRow, error) {
	var rows []*reports.LotDetailRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, lotDetailSQL, articleID); err != nil {
		return nil, fmt.Errorf("lot detail: %w", err)
	}
	return rows, nil
}

const dashboardSQL = `
SELECT
    (SELECT COUNT(*) FROM fact_sales)                            AS total_sales,
    (SELECT COALESCE(SUM(total_sale), 0) FROM fact_sales)        AS total_sales_amount,
    (SELECT COUNT(*) FROM cat_clients)                           AS total_clients,
    (SELECT COUNT(*) FROM cat_articles)                          AS total_articles,
    (SELECT COUNT(*) FROM fact_sales WHERE sale_date >= $1 AND sale_date < $2) AS sales_today,
    (SELECT COALESCE(SUM(total_sale), 0) FROM fact_sales WHERE sale_date >= $1 AND sale_date < $2) AS amount_today`

type dashboardRow struct {
	TotalSales       int64   `db:"total_sales"`
	TotalSalesAmount float64 `db:"total_sales_amount"`
	TotalClients     int64   `db:"total_clients"`
	TotalArticles    int64   `db:"total_articles"`
	SalesToday       int64   `db:"sales_today"`
	AmountToday      float64 `db:"amount_today"`
}

// DashboardCounters returns the headline counters. today marks the
// start of the current day.
func (r *ReportRepo) DashboardCounters(ctx context.Context, today time.Time) (*reports.Dashboard, error) {
	var row dashboardRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, dashboardSQL, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}

	return &reports.Dashboard{
		TotalSales:       row.TotalSales,
		TotalSalesAmount: types.NewMoney(row.TotalSalesAmount),
		TotalClients:     row.TotalClients,
		TotalArticles:    row.TotalArticles,
		SalesToday:       row.SalesToday,
		AmountToday:      types.NewMoney(row.AmountToday),
	}, nil
}
