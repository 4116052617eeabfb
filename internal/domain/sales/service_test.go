package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
)

type engineFixture struct {
	svc      *Service
	ledger   *ledger.Service
	store    *memStore
	lotRepo  *fakeLotRepo
	saleRepo *fakeSaleRepo

	articleX *article.Article
	articleY *article.Article
	client   *client.Client
	society  *society.Society
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	store := newMemStore()
	lotRepo := &fakeLotRepo{store: store}
	saleRepo := &fakeSaleRepo{store: store}
	txm := &fakeTxManager{store: store}
	lotLedger := ledger.NewService(lotRepo)

	artX := article.New("CERV001", "Lager 33cl", 12)
	artY := article.New("AGUA001", "Water 50cl", 6)
	cli := client.New("CLI001", "Bar Central")
	soc := &society.Society{ID: id.New(), Code: "SOC001", Name: "Main", IsDefault: true}

	fx := &engineFixture{
		ledger:   lotLedger,
		store:    store,
		lotRepo:  lotRepo,
		saleRepo: saleRepo,
		articleX: artX,
		articleY: artY,
		client:   cli,
		society:  soc,
	}
	fx.svc = NewService(
		txm,
		saleRepo,
		&fakeArticles{byID: map[id.ID]*article.Article{artX.ID: artX, artY.ID: artY}},
		&fakeClients{byID: map[id.ID]*client.Client{cli.ID: cli}},
		&fakeSocieties{def: soc},
		lotLedger,
		nil,
	)
	return fx
}

func (fx *engineFixture) addLot(t *testing.T, articleID id.ID, invoiceDate time.Time, units float64, unitCost float64) *ledger.Lot {
	t.Helper()
	lot, err := fx.ledger.AddLot(context.Background(), &ledger.NewLot{
		ArticleID:   articleID,
		InvoiceDate: invoiceDate,
		Quantity:    types.NewQuantityFromFloat64(units),
		UnitCost:    types.NewMoney(unitCost),
		SocietyID:   fx.society.ID,
		LotNumber:   "LOT-TEST",
	})
	require.NoError(t, err)
	return lot
}

func (fx *engineFixture) remaining(t *testing.T, lotID id.ID) types.Quantity {
	t.Helper()
	lot, err := fx.lotRepo.GetByID(context.Background(), lotID)
	require.NoError(t, err)
	return lot.RemainingQuantity
}

// Scenario from the sale engine contract: unitsPerCase=12, one lot of
// 100 units at 2.00, selling 5 cases at 30.00 per case.
func TestCreate_ComputesTotalsAndDepletesLot(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	lot := fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	res, err := fx.svc.Create(ctx, &Input{
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 5, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "150.00", res.TotalSale)
	assert.Equal(t, "120.00", res.TotalCost)
	assert.Equal(t, "30.00", res.TotalMargin)
	assert.Equal(t, types.NewQuantityFromInt(40), fx.remaining(t, lot.ID))

	detail, err := fx.svc.GetByID(ctx, res.SaleID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	line := detail.Lines[0]
	assert.Equal(t, 5, line.Cases)
	assert.Equal(t, types.NewQuantityFromInt(60), line.Units)
	assert.Equal(t, "2.50", types.FormatMoney(line.PricePerUnit))
	require.NotNil(t, line.LotID)
	assert.Equal(t, lot.ID, *line.LotID)
	assert.Equal(t, fx.society.ID, detail.Sale.SocietyID)
}

func TestCreate_InsufficientStockOnSecondLineRollsBackEverything(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	lotX := fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)
	lotY := fx.addLot(t, fx.articleY.ID, time.Now(), 5, 1.00)

	_, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 2, PricePerCase: types.NewMoney(30.00)},
			// 10 cases * 6 units = 60 units, only 5 available
			{ArticleID: fx.articleY.ID, Cases: 10, PricePerCase: types.NewMoney(8.00)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// first line's consumption is undone, nothing is persisted
	assert.Equal(t, types.NewQuantityFromInt(100), fx.remaining(t, lotX.ID))
	assert.Equal(t, types.NewQuantityFromInt(5), fx.remaining(t, lotY.ID))
	assert.Empty(t, fx.store.sales)
	assert.Empty(t, fx.store.lines)
}

func TestCreate_UnknownClient(t *testing.T) {
	fx := newEngineFixture(t)
	fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	_, err := fx.svc.Create(context.Background(), &Input{
		ClientID: id.New(),
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 1, PricePerCase: types.NewMoney(10)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, fx.store.sales)
}

func TestCreate_EmptyCart(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.Create(context.Background(), &Input{ClientID: fx.client.ID})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_LineMissingArticle(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.Create(context.Background(), &Input{
		ClientID: fx.client.ID,
		Lines:    []LineInput{{Cases: 1, PricePerCase: types.NewMoney(10)}},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_MultiLotBlendedCost(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	day1 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	oldLot := fx.addLot(t, fx.articleY.ID, day1, 10, 1.00)
	newLot := fx.addLot(t, fx.articleY.ID, day2, 10, 2.00)

	// 3 cases * 6 units = 18 units: 10 from the old lot, 8 from the new
	res, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleY.ID, Cases: 3, PricePerCase: types.NewMoney(12.00)},
		},
	})
	require.NoError(t, err)

	// 10*1.00 + 8*2.00
	assert.Equal(t, "26.00", res.TotalCost)
	assert.True(t, fx.remaining(t, oldLot.ID).IsZero())
	assert.Equal(t, types.NewQuantityFromInt(2), fx.remaining(t, newLot.ID))

	// the line records the last lot touched
	detail, err := fx.svc.GetByID(ctx, res.SaleID)
	require.NoError(t, err)
	require.NotNil(t, detail.Lines[0].LotID)
	assert.Equal(t, newLot.ID, *detail.Lines[0].LotID)
}

func TestUpdate_RoundTripKeepsTotalStock(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	in := &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 5, PricePerCase: types.NewMoney(30.00)},
		},
	}
	created, err := fx.svc.Create(ctx, in)
	require.NoError(t, err)

	before, err := fx.lotRepo.AvailableUnits(ctx, fx.articleX.ID)
	require.NoError(t, err)

	updated, err := fx.svc.Update(ctx, created.SaleID, in)
	require.NoError(t, err)

	after, err := fx.lotRepo.AvailableUnits(ctx, fx.articleX.ID)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, created.TotalSale, updated.TotalSale)
	assert.Equal(t, created.TotalCost, updated.TotalCost)
	assert.Equal(t, created.TotalMargin, updated.TotalMargin)

	// still exactly one line set
	detail, err := fx.svc.GetByID(ctx, created.SaleID)
	require.NoError(t, err)
	assert.Len(t, detail.Lines, 1)
}

func TestUpdate_ReplacesLineList(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)
	fx.addLot(t, fx.articleY.ID, time.Now(), 50, 1.00)

	created, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 2, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)

	res, err := fx.svc.Update(ctx, created.SaleID, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleY.ID, Cases: 4, PricePerCase: types.NewMoney(8.00)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "32.00", res.TotalSale)

	// old article's stock is fully restored
	availX, err := fx.lotRepo.AvailableUnits(ctx, fx.articleX.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromInt(100), availX)

	availY, err := fx.lotRepo.AvailableUnits(ctx, fx.articleY.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromInt(26), availY)

	detail, err := fx.svc.GetByID(ctx, created.SaleID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, fx.articleY.ID, detail.Lines[0].ArticleID)
}

func TestUpdate_FailureRestoresOriginalState(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	lot := fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	created, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 5, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, types.NewQuantityFromInt(40), fx.remaining(t, lot.ID))

	// 20 cases * 12 = 240 units, more than the lot ever held
	_, err = fx.svc.Update(ctx, created.SaleID, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 20, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// reversal and deletion inside the failed update are rolled back
	assert.Equal(t, types.NewQuantityFromInt(40), fx.remaining(t, lot.ID))
	detail, err := fx.svc.GetByID(ctx, created.SaleID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 5, detail.Lines[0].Cases)
	assert.Equal(t, "150.00", types.FormatMoney(detail.Sale.TotalSale))
}

func TestUpdate_SaleNotFound(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.Update(context.Background(), id.New(), &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 1, PricePerCase: types.NewMoney(10)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPreviewQuote_DoesNotTouchStockOrPersist(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	lot := fx.addLot(t, fx.articleX.ID, time.Now(), 10, 2.00)

	// 50 cases is far beyond available stock; preview does not care
	preview, err := fx.svc.PreviewQuote(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 50, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)

	require.Len(t, preview.Lines, 1)
	assert.Equal(t, 600, preview.Lines[0].Units)
	assert.Equal(t, "1500.00", types.FormatMoney(preview.TotalSale))

	assert.Equal(t, types.NewQuantityFromInt(10), fx.remaining(t, lot.ID))
	assert.Empty(t, fx.store.sales)
}

func TestGet_ReturnsSameTotalsAsCreate(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	res, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 5, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)

	detail, err := fx.svc.GetByID(ctx, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, res.TotalSale, types.FormatMoney(detail.Sale.TotalSale))
	assert.Equal(t, res.TotalCost, types.FormatMoney(detail.Sale.TotalCost))
	assert.Equal(t, res.TotalMargin, types.FormatMoney(detail.Sale.TotalMargin))
}

func TestList_FiltersByClient(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	fx.addLot(t, fx.articleX.ID, time.Now(), 100, 2.00)

	_, err := fx.svc.Create(ctx, &Input{
		ClientID: fx.client.ID,
		Lines: []LineInput{
			{ArticleID: fx.articleX.ID, Cases: 1, PricePerCase: types.NewMoney(30.00)},
		},
	})
	require.NoError(t, err)

	clientID := fx.client.ID
	got, err := fx.svc.List(ctx, ListFilter{ClientID: &clientID})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	other := id.New()
	got, err = fx.svc.List(ctx, ListFilter{ClientID: &other})
	require.NoError(t, err)
	assert.Empty(t, got)
}
