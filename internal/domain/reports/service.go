package reports

import (
	"context"
	"time"

	"bevstock/internal/core/id"
	"bevstock/internal/core/tx"
)

// Repository is the read-only persistence port for the report queries.
// Aggregation happens in SQL; the service only derives presentation
// fields (case equivalents, status).
type Repository interface {
	StockOverview(ctx context.Context) ([]*StockRow, error)
	ArticleStock(ctx context.Context, articleID id.ID) (*StockRow, error)
	LotDetail(ctx context.Context, articleID id.ID) ([]*LotDetailRow, error)
	DashboardCounters(ctx context.Context, today time.Time) (*Dashboard, error)
}

// Service exposes the reporting reads. Queries that span several
// statements run in a read-only transaction for a consistent snapshot.
type Service struct {
	txManager tx.ReadOnlyManager
	repo      Repository
}

func NewService(txManager tx.ReadOnlyManager, repo Repository) *Service {
	return &Service{txManager: txManager, repo: repo}
}

// StockOverview returns every article's aggregate stock position.
func (s *Service) StockOverview(ctx context.Context) ([]*StockRow, error) {
	var rows []*StockRow
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.StockOverview(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		decorate(row)
	}
	return rows, nil
}

// ArticleStock returns one article's stock summary.
func (s *Service) ArticleStock(ctx context.Context, articleID id.ID) (*ArticleStock, error) {
	row, err := s.repo.ArticleStock(ctx, articleID)
	if err != nil {
		return nil, err
	}
	decorate(row)
	return &ArticleStock{
		ArticleID:      row.ArticleID,
		UnitsPerCase:   row.UnitsPerCase,
		AvailableUnits: row.AvailableUnits,
		AvailableCases: row.AvailableCases,
		Status:         row.Status,
	}, nil
}

// LotDetail returns an article's open lots in consumption order.
func (s *Service) LotDetail(ctx context.Context, articleID id.ID) ([]*LotDetailRow, error) {
	return s.repo.LotDetail(ctx, articleID)
}

// Dashboard returns the headline counters. Today is evaluated in UTC.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash *Dashboard
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		dash, err = s.repo.DashboardCounters(ctx, time.Now().UTC().Truncate(24*time.Hour))
		return err
	})
	if err != nil {
		return nil, err
	}
	return dash, nil
}

func decorate(row *StockRow) {
	if row.UnitsPerCase > 0 {
		row.AvailableCases = row.AvailableUnits.Float64() / float64(row.UnitsPerCase)
	}
	row.Status = ClassifyStock(row.AvailableUnits, row.UnitsPerCase)
}
