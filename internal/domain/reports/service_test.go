package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name         string
		available    float64
		unitsPerCase int
		want         StockStatus
	}{
		{"zero is empty", 0, 12, StockEmpty},
		{"below one case is low", 11, 12, StockLow},
		{"exactly one case is ok", 12, 12, StockOK},
		{"above one case is ok", 100, 12, StockOK},
		{"fractional below case", 5.5, 6, StockLow},
		{"single unit case size", 1, 1, StockOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStock(types.NewQuantityFromFloat64(tt.available), tt.unitsPerCase)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubRepo struct {
	rows []*StockRow
	dash *Dashboard
}

func (s *stubRepo) StockOverview(context.Context) ([]*StockRow, error) { return s.rows, nil }

func (s *stubRepo) ArticleStock(_ context.Context, articleID id.ID) (*StockRow, error) {
	for _, r := range s.rows {
		if r.ArticleID == articleID {
			return r, nil
		}
	}
	return &StockRow{ArticleID: articleID, UnitsPerCase: 1}, nil
}

func (s *stubRepo) LotDetail(context.Context, id.ID) ([]*LotDetailRow, error) { return nil, nil }

func (s *stubRepo) DashboardCounters(context.Context, time.Time) (*Dashboard, error) {
	return s.dash, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestStockOverview_DerivesCasesAndStatus(t *testing.T) {
	repo := &stubRepo{rows: []*StockRow{
		{ArticleID: id.New(), Code: "CERV001", UnitsPerCase: 12, AvailableUnits: types.NewQuantityFromInt(60), LotCount: 2},
		{ArticleID: id.New(), Code: "AGUA001", UnitsPerCase: 6, AvailableUnits: types.NewQuantityFromInt(3)},
		{ArticleID: id.New(), Code: "VINO001", UnitsPerCase: 6},
	}}
	svc := NewService(passthroughTx{}, repo)

	rows, err := svc.StockOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 5.0, rows[0].AvailableCases)
	assert.Equal(t, StockOK, rows[0].Status)
	assert.Equal(t, 0.5, rows[1].AvailableCases)
	assert.Equal(t, StockLow, rows[1].Status)
	assert.Equal(t, StockEmpty, rows[2].Status)
}

func TestArticleStock(t *testing.T) {
	articleID := id.New()
	repo := &stubRepo{rows: []*StockRow{
		{ArticleID: articleID, UnitsPerCase: 12, AvailableUnits: types.NewQuantityFromInt(40)},
	}}
	svc := NewService(passthroughTx{}, repo)

	got, err := svc.ArticleStock(context.Background(), articleID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromInt(40), got.AvailableUnits)
	assert.InDelta(t, 3.333, got.AvailableCases, 0.001)
	assert.Equal(t, StockOK, got.Status)
}

func TestDashboard(t *testing.T) {
	repo := &stubRepo{dash: &Dashboard{
		TotalSales:       7,
		TotalSalesAmount: types.NewMoney(1050.00),
		TotalClients:     3,
		TotalArticles:    8,
		SalesToday:       2,
		AmountToday:      types.NewMoney(300.00),
	}}
	svc := NewService(passthroughTx{}, repo)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), dash.TotalSales)
	assert.Equal(t, "1050.00", types.FormatMoney(dash.TotalSalesAmount))
}
